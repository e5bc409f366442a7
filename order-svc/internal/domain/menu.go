package domain

import "github.com/shopspring/decimal"

// Menu categories.
const (
	CategorySandwiches = "sandwiches"
	CategoryToasts     = "toasts"
	CategorySalads     = "salads"
	CategoryColdDrinks = "cold drinks"
	CategoryCoffee     = "coffee"
	CategoryPizza      = "pizza"
	CategoryBakery     = "bakery"
	CategorySnacks     = "snacks"
)

var toppings = []string{"corn", "tomato", "olives", "onion", "bell pepper", "feta", "hot pepper"}

func item(id, name, price, category string) MenuItem {
	return MenuItem{
		ID:          id,
		Name:        name,
		Description: name,
		Price:       decimal.RequireFromString(price),
		Category:    category,
		Available:   true,
	}
}

func withAddons(m MenuItem, addons ...string) MenuItem {
	m.HasAddons = true
	m.Addons = addons
	return m
}

func withVariations(m MenuItem, variations ...string) MenuItem {
	m.HasVariations = true
	m.Variations = variations
	return m
}

// DefaultMenu is served when the menu table is empty or unreachable.
// Bakery items carry a zero price because they are charged by size.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		withAddons(item("1", "Omelette sandwich", "18.50", CategorySandwiches), "avocado", "tuna", "yellow cheese"),
		withAddons(item("1b", "Avocado sandwich", "18.50", CategorySandwiches), "omelette", "tuna", "yellow cheese"),
		withAddons(item("1c", "Tuna sandwich", "18.50", CategorySandwiches), "omelette", "avocado", "yellow cheese"),
		withAddons(item("1d", "Yellow cheese sandwich", "18.50", CategorySandwiches), "omelette", "avocado", "tuna"),
		withAddons(item("2", "Toast", "19.10", CategoryToasts), append([]string{"tuna"}, toppings...)...),
		withVariations(item("3", "Personal salad", "17.00", CategorySalads), "israeli salad", "tuna salad", "feta salad"),

		item("7", "Cola can", "5.50", CategoryColdDrinks),
		item("7b", "Cola zero can", "5.50", CategoryColdDrinks),
		item("7c", "Fruit nectar", "5.50", CategoryColdDrinks),
		item("8", "Cola bottle", "6.50", CategoryColdDrinks),
		item("8b", "Cola zero bottle", "6.50", CategoryColdDrinks),
		item("8c", "Iced tea bottle", "6.50", CategoryColdDrinks),
		item("8d", "Soda bottle", "6.50", CategoryColdDrinks),
		item("9", "Water", "4.50", CategoryColdDrinks),

		item("12", "Small coffee", "7.50", CategoryCoffee),
		item("13", "Large coffee", "9.00", CategoryCoffee),

		withAddons(item("14", "Pizza", "20.50", CategoryPizza), toppings...),

		withVariations(item("15", "Chocolate croissant", "0", CategoryBakery), "small", "large"),
		withVariations(item("15b", "Butter croissant", "0", CategoryBakery), "small", "large"),
		withVariations(item("15c", "Almond croissant", "0", CategoryBakery), "small", "large"),
		withVariations(item("15d", "Cheese bourekas", "0", CategoryBakery), "small", "large"),

		item("17", "Potato chips", "4.80", CategorySnacks),
		item("18", "Bamba", "4.80", CategorySnacks),
		item("19", "Apropo", "4.80", CategorySnacks),
		item("20", "Pesek Zman", "5.60", CategorySnacks),
		item("21", "Kif Kef", "5.60", CategorySnacks),
		item("22", "Reese's", "4.80", CategorySnacks),
		item("23", "Ritter Sport", "12.60", CategorySnacks),
		item("24", "Mentos gum", "9.30", CategorySnacks),
		item("25", "Must gum", "5.50", CategorySnacks),
	}
}
