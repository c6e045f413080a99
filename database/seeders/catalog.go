package seeders

import (
	"io"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
)

func init() {
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
	Register("admin", SeedAdmin)
}

var starterCategories = []models.Category{
	{Name: "Protein", Description: "Whey, casein and plant proteins."},
	{Name: "Amino acids", Description: "BCAA, EAA and glutamine."},
	{Name: "Creatine", Description: "Creatine monohydrate and blends."},
	{Name: "Vitamins", Description: "Vitamins, minerals and omega-3."},
	{Name: "Gainers", Description: "High-calorie mass gainers."},
	{Name: "Bars", Description: "Protein bars and snacks."},
}

type starterProduct struct {
	category   string
	name       string
	weight     int
	price      string
	oldPrice   string
	bestseller bool
}

var starterProducts = []starterProduct{
	{"Protein", "Whey Protein Vanilla", 1000, "1290.00", "1490.00", true},
	{"Protein", "Whey Isolate Chocolate", 900, "1690.00", "", true},
	{"Protein", "Micellar Casein", 1000, "1390.00", "", false},
	{"Amino acids", "BCAA 2:1:1", 400, "690.00", "790.00", true},
	{"Amino acids", "L-Glutamine", 300, "520.00", "", false},
	{"Creatine", "Creatine Monohydrate", 500, "540.00", "", true},
	{"Vitamins", "Omega-3 Fish Oil", 120, "450.00", "", false},
	{"Vitamins", "Daily Multivitamin", 90, "380.00", "", false},
	{"Gainers", "Mass Gainer Banana", 3000, "1850.00", "2100.00", false},
	{"Bars", "Protein Bar Peanut", 60, "70.00", "", true},
}

// SeedCategories inserts missing starter categories.
func SeedCategories(db *gorm.DB, _ io.Writer) error {
	for _, c := range starterCategories {
		c := c
		if err := db.Where(models.Category{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts missing starter products with the default stock.
func SeedProducts(db *gorm.DB, _ io.Writer) error {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return err
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	for _, sp := range starterProducts {
		p := models.Product{
			Name:          sp.name,
			Weight:        sp.weight,
			Price:         decimal.RequireFromString(sp.price),
			IsBestseller:  sp.bestseller,
			StockQuantity: models.DefaultStock,
		}
		if sp.oldPrice != "" {
			old := decimal.RequireFromString(sp.oldPrice)
			p.OldPrice = decimal.NewNullDecimal(old)
			p.DiscountPercent = int(old.Sub(p.Price).Div(old).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
		if id, ok := byName[sp.category]; ok {
			p.CategoryID = &id
		}

		if err := db.Where(models.Product{Name: p.Name}).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
