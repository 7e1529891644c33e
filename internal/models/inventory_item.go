package models

import "time"

// LowStockThreshold marca itens com estoque baixo no painel do profissional.
const LowStockThreshold = 5

type InventoryItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barbeiro_id"`

	Name        string  `gorm:"size:200;not null" json:"produto"`
	Quantity    int     `json:"quantidade"`
	UnitCost    float64 `json:"preco_custo"`
	Supplier    string  `gorm:"size:150" json:"fornecedor"`
	Category    string  `gorm:"size:100" json:"categoria"`
	Description string  `gorm:"size:500" json:"descricao"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *InventoryItem) LowStock() bool {
	return i.Quantity < LowStockThreshold
}
