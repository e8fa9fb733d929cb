package model

import "time"

type Branding struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	LogoURL     string `json:"logo_url"`
}

type AdminIdentity struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// SyncConfig holds the optional remote replication credentials. It is local to
// the device and never taken from a remote snapshot.
type SyncConfig struct {
	Enabled  bool   `json:"enabled"`
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// AppSettings is the process-wide configuration record.
type AppSettings struct {
	Branding         Branding      `json:"branding"`
	Theme            string        `json:"theme"`
	Admin            AdminIdentity `json:"admin"`
	WarehouseName    string        `json:"warehouse_name"`
	HandoverTemplate string        `json:"handover_template"`
	Sync             SyncConfig    `json:"sync"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		Branding: Branding{
			CompanyName: "Warehouse",
		},
		Theme:         "light",
		WarehouseName: "Main Warehouse",
	}
}
