package domain

// ShoeType is the product line a shoe belongs to.
type ShoeType string

const (
	ShoeSneakers ShoeType = "SNEAKERS"
	ShoeBoots    ShoeType = "BOOTS"
	ShoeSandals  ShoeType = "SANDALS"
	ShoeLoafers  ShoeType = "LOAFERS"
	ShoeHeels    ShoeType = "HEELS"
)

// ShoeTypes lists every product line in catalogue order.
var ShoeTypes = []ShoeType{ShoeSneakers, ShoeBoots, ShoeSandals, ShoeLoafers, ShoeHeels}

// Shoe is a sellable product variant. Prices are whole currency units.
type Shoe struct {
	ID              int64    `json:"id"`
	Type            ShoeType `json:"type"`
	Size            int      `json:"size"`
	Price           int64    `json:"price"`
	ProductionPrice int64    `json:"production_price"`
}
