package security

// In-memory shopper registry (replace with DB/identity provider later)
type Shopper struct {
	ID      string
	Email   string
	Secret  string
	Enabled bool
}

var Shoppers = map[string]Shopper{
	"demo@example.com":    {ID: "u_demo", Email: "demo@example.com", Secret: "demo-secret", Enabled: true},
	"shopper@example.com": {ID: "u_shopper", Email: "shopper@example.com", Secret: "shopper-secret", Enabled: true},
}
