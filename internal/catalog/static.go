package catalog

import (
	"time"

	"github.com/luxefashion/go-storefront/internal/price"
)

// Static fallback catalog, bundled in two groups like the original data
// file: four "new collection" pieces and four bestsellers. Served when
// the remote product service returns nothing.

func mustPrice(s string) price.Cents {
	c, err := price.Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func staticTime(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func NewCollectionStatic() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Silk Evening Dress",
			Category:    "dresses",
			Price:       mustPrice("$189.99"),
			OldPrice:    mustPrice("$249.99"),
			Images:      []string{"https://images.luxefashion.uz/products/silk-evening-dress.jpg"},
			Badge:       BadgeNew,
			Rating:      4.8,
			Colors:      []string{"black", "emerald", "burgundy"},
			Sizes:       []string{"XS", "S", "M", "L"},
			Description: "Floor-length silk dress with a draped neckline.",
			CreatedAt:   staticTime(28),
		},
		{
			ID:        "2",
			Name:      "Tailored Wool Blazer",
			Category:  "jackets",
			Price:     mustPrice("$159.00"),
			Images:    []string{"https://images.luxefashion.uz/products/wool-blazer.jpg"},
			Badge:     BadgeNew,
			Rating:    4.6,
			Colors:    []string{"camel", "charcoal"},
			Sizes:     []string{"S", "M", "L", "XL"},
			CreatedAt: staticTime(27),
		},
		{
			ID:        "3",
			Name:      "Pleated Midi Skirt",
			Category:  "skirts",
			Price:     mustPrice("$89.99"),
			Images:    []string{"https://images.luxefashion.uz/products/pleated-midi-skirt.jpg"},
			Badge:     BadgeNew,
			Rating:    4.5,
			Colors:    []string{"ivory", "navy"},
			Sizes:     []string{"XS", "S", "M", "L"},
			CreatedAt: staticTime(26),
		},
		{
			ID:        "4",
			Name:      "Cashmere Turtleneck",
			Category:  "knitwear",
			Price:     mustPrice("$129.50"),
			Images:    []string{"https://images.luxefashion.uz/products/cashmere-turtleneck.jpg"},
			Badge:     BadgeNew,
			Rating:    4.9,
			Colors:    []string{"cream", "grey", "black"},
			Sizes:     []string{"S", "M", "L"},
			CreatedAt: staticTime(25),
		},
	}
}

func BestsellersStatic() []Product {
	return []Product{
		{
			ID:        "5",
			Name:      "Classic White Shirt",
			Category:  "shirts",
			Price:     mustPrice("$49.99"),
			Images:    []string{"https://images.luxefashion.uz/products/classic-white-shirt.jpg"},
			Badge:     BadgeBestseller,
			Rating:    4.7,
			Colors:    []string{"white"},
			Sizes:     []string{"XS", "S", "M", "L", "XL"},
			CreatedAt: staticTime(10),
		},
		{
			ID:        "6",
			Name:      "High-Waist Trousers",
			Category:  "trousers",
			Price:     mustPrice("$74.99"),
			OldPrice:  mustPrice("$94.99"),
			Images:    []string{"https://images.luxefashion.uz/products/high-waist-trousers.jpg"},
			Badge:     BadgeBestseller,
			Rating:    4.4,
			Colors:    []string{"black", "beige"},
			Sizes:     []string{"S", "M", "L"},
			CreatedAt: staticTime(8),
		},
		{
			ID:        "7",
			Name:      "Leather Crossbody Bag",
			Category:  "accessories",
			Price:     mustPrice("$119.00"),
			Images:    []string{"https://images.luxefashion.uz/products/leather-crossbody.jpg"},
			Badge:     BadgeBestseller,
			Rating:    4.8,
			Colors:    []string{"tan", "black"},
			CreatedAt: staticTime(6),
		},
		{
			ID:        "8",
			Name:      "Satin Slip Dress",
			Category:  "dresses",
			Price:     mustPrice("$99.99"),
			Images:    []string{"https://images.luxefashion.uz/products/satin-slip-dress.jpg"},
			Badge:     BadgeBestseller,
			Rating:    4.6,
			Colors:    []string{"champagne", "black"},
			Sizes:     []string{"XS", "S", "M", "L"},
			CreatedAt: staticTime(4),
		},
	}
}

// StaticProducts is the full bundled list, new collection first.
func StaticProducts() []Product {
	return append(NewCollectionStatic(), BestsellersStatic()...)
}
