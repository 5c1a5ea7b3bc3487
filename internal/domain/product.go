package domain

// Sex is the user attribute that drives how an owner's name is displayed.
type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

// User represents a catalog user. Users own categories.
// The json tags correspond to the fields expected in API responses.
type User struct {
	ID   int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	Name string `json:"name" yaml:"name" validate:"required,max=255"`
	Sex  Sex    `json:"sex" yaml:"sex" validate:"omitempty,oneof=m f"`
}

// Category represents a product category. OwnerID references a User.ID.
type Category struct {
	ID      int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	Title   string `json:"title" yaml:"title" validate:"required,max=255"`
	Icon    string `json:"icon" yaml:"icon" validate:"max=32"`
	OwnerID int64  `json:"ownerId" yaml:"ownerId" validate:"gte=0"`
}

// Product represents a product in the catalog. CategoryID references a Category.ID.
type Product struct {
	ID         int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	Name       string `json:"name" yaml:"name" validate:"required,max=255"`
	CategoryID int64  `json:"categoryId" yaml:"categoryId" validate:"gte=0"`
}

// EnrichedProduct is a Product with its category and the category's owner resolved.
// A nil Category or Owner means the reference could not be resolved; it is not an error.
type EnrichedProduct struct {
	Product
	Category *Category `json:"category"`
	Owner    *User     `json:"user"`
}

// Dataset is the read-only set of records a catalog is built from.
// It is loaded once at startup and never mutated afterwards.
type Dataset struct {
	Users      []User     `json:"users" yaml:"users" validate:"dive"`
	Categories []Category `json:"categories" yaml:"categories" validate:"dive"`
	Products   []Product  `json:"products" yaml:"products" validate:"dive"`
}
