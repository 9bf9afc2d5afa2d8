package config

// Module describe una sección navegable de la app. El registro es estático:
// el cliente lo consulta para armar el menú, nada se persiste.
type Module struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Route    string `json:"route"`
	Category string `json:"category"`
}

var modules = []Module{
	{ID: "dashboard", Name: "Dashboard", Icon: "layout-dashboard", Route: "/dashboard", Category: "general"},
	{ID: "accounts", Name: "Conti", Icon: "wallet", Route: "/accounts", Category: "banking"},
	{ID: "transfers", Name: "Trasferimenti", Icon: "arrow-left-right", Route: "/transfers", Category: "banking"},
	{ID: "budgets", Name: "Budget", Icon: "piggy-bank", Route: "/budgets", Category: "banking"},
	{ID: "dca", Name: "DCA Bitcoin", Icon: "bitcoin", Route: "/dca", Category: "investments"},
	{ID: "crypto", Name: "Portafoglio Crypto", Icon: "coins", Route: "/crypto", Category: "investments"},
	{ID: "snapshots", Name: "Snapshot", Icon: "camera", Route: "/snapshots", Category: "investments"},
	{ID: "partita-iva", Name: "Partita IVA", Icon: "receipt", Route: "/partita-iva", Category: "taxes"},
}

// Modules devuelve una copia para que el caller no pueda mutar el registro
func Modules() []Module {
	out := make([]Module, len(modules))
	copy(out, modules)
	return out
}
