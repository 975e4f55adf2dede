// Package view maps logical view identifiers to page metadata. It
// carries no state beyond the fixed route table.
package view

const DefaultID = "dashboard"

// View is the resolved page metadata for a view identifier.
type View struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var titles = map[string]string{
	"dashboard":    "Dasbor",
	"transactions": "Riwayat Transaksi",
	"customers":    "Daftar Pelanggan",
	"settings":     "Pengaturan",
}

// Resolve returns the view for the identifier; unknown identifiers fall
// back to the dashboard.
func Resolve(id string) View {
	if title, ok := titles[id]; ok {
		return View{ID: id, Title: title}
	}
	return View{ID: DefaultID, Title: titles[DefaultID]}
}

// All lists the known views in navigation order.
func All() []View {
	return []View{
		{ID: "dashboard", Title: titles["dashboard"]},
		{ID: "transactions", Title: titles["transactions"]},
		{ID: "customers", Title: titles["customers"]},
		{ID: "settings", Title: titles["settings"]},
	}
}
