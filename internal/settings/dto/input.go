package dto

type UpdateSettingsInput struct {
	CompanyName      string `validate:"max=200"`
	Address          string `validate:"max=500"`
	Phone            string `validate:"max=50"`
	Email            string `validate:"omitempty,email"`
	LogoURL          string `validate:"omitempty,url"`
	Theme            string `validate:"omitempty,oneof=light dark system"`
	AdminName        string `validate:"max=200"`
	AdminTitle       string `validate:"max=200"`
	WarehouseName    string `validate:"max=200"`
	HandoverTemplate string

	SyncEnabled bool
	SyncAddr    string `validate:"required_if=SyncEnabled true"`
	// SyncPassword keeps the stored password when empty.
	SyncPassword string
	SyncDB       int `validate:"gte=0"`
}
