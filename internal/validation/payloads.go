package validation

// UserPayload is the body of user registration and update.
type UserPayload struct {
	Username string `json:"username" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
	IsAdmin  *bool  `json:"isAdmin"`
}

// LoginPayload is the body of POST /api/auth.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
}

// ItemPayload is the body of item create and update.
type ItemPayload struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

// CategoryPayload is the body of category create and update.
type CategoryPayload struct {
	Name   string `json:"name" validate:"required,min=4,max=255"`
	ItemID string `json:"itemId" validate:"required,uuid"`
}
