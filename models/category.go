package models

// Category is a catalog product category
type Category string

const (
	CategoryTop       Category = "Top"
	CategoryBottom    Category = "Bottom"
	CategoryOuterwear Category = "Outerwear"
	CategoryShoes     Category = "Shoes"
	CategoryDress     Category = "Dress"
	CategoryAccessory Category = "Accessory"
	CategorySweater   Category = "Sweater"
	CategoryJeans     Category = "Jeans"
	CategoryTee       Category = "Tee"
)

// KnownCategories lists every catalog category the engine maps slots onto
var KnownCategories = []Category{
	CategoryTop,
	CategoryBottom,
	CategoryOuterwear,
	CategoryShoes,
	CategoryDress,
	CategoryAccessory,
	CategorySweater,
	CategoryJeans,
	CategoryTee,
}

// Slot is an archetypal item role named by a capsule template (e.g. "trench_coat")
type Slot string

const (
	SlotTrenchCoat   Slot = "trench_coat"
	SlotWoolCoat     Slot = "wool_coat"
	SlotBlazer       Slot = "blazer"
	SlotKimono       Slot = "kimono"
	SlotCoverup      Slot = "coverup"
	SlotSweater      Slot = "sweater"
	SlotCardigan     Slot = "cardigan"
	SlotTurtleneck   Slot = "turtleneck"
	SlotLinenShirt   Slot = "linen_shirt"
	SlotTank         Slot = "tank"
	SlotBikini       Slot = "bikini"
	SlotTee          Slot = "tee"
	SlotJeans        Slot = "jeans"
	SlotTrousers     Slot = "trousers"
	SlotWideLegPants Slot = "wide_leg_pants"
	SlotShorts       Slot = "shorts"
	SlotLinenPants   Slot = "linen_pants"
	SlotMidiDress    Slot = "midi_dress"
	SlotSundress     Slot = "sundress"
	SlotBoots        Slot = "boots"
	SlotLoafers      Slot = "loafers"
	SlotSneakers     Slot = "sneakers"
	SlotSandals      Slot = "sandals"
	SlotScarf        Slot = "scarf"
	SlotBag          Slot = "bag"
	SlotBelt         Slot = "belt"
	SlotTote         Slot = "tote"
	SlotCrossbody    Slot = "crossbody"
	SlotSunglasses   Slot = "sunglasses"
	SlotHat          Slot = "hat"
	SlotGloves       Slot = "gloves"
)
