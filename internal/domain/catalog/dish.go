package catalog

// Dish is a base dish the customer configures. Dishes are reference data.
type Dish struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Dish) TableName() string {
	return "dishes"
}
