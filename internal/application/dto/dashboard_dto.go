package dto

// DashboardStats tarjetas del inicio. Visible=false para roles que no las ven.
type DashboardStats struct {
	Visible      bool   `json:"visible"`
	Products     int    `json:"products"`
	Staff        int    `json:"staff"`
	ImportsToday int    `json:"imports_today"`
	ExportsToday int    `json:"exports_today"`
	DateLabel    string `json:"date_label,omitempty"`
}
