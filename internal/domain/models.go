package domain

// TradeInRequest is one customer-submitted vehicle appraisal request.
// UserEmail is a free-form tag, not a verified reference to users.
type TradeInRequest struct {
	ID             int64  `db:"id" json:"id"`
	Make           string `db:"car_brand" json:"make"`
	Model          string `db:"car_model" json:"model"`
	Year           int    `db:"year" json:"year"`
	Mileage        int    `db:"mileage" json:"mileage"`
	Phone          string `db:"phone" json:"phone"`
	UserEmail      string `db:"user_email" json:"userEmail"`
	EstimatedPrice int64  `db:"estimated_price" json:"estimatedPrice"`
	CreatedAt      string `db:"created_at" json:"createdAt"`
}

// Car is a catalog listing.
type Car struct {
	ID          string `db:"id" json:"id"`
	Brand       string `db:"brand" json:"brand"`
	Model       string `db:"model" json:"model"`
	Year        int    `db:"year" json:"year"`
	Mileage     int    `db:"mileage" json:"mileage"`
	Price       int64  `db:"price" json:"price"`
	Image       string `db:"image" json:"image"`
	Description string `db:"description" json:"description"`
}
