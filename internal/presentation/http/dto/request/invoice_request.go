package request

// InvoiceFilterRequest selects invoices by vehicle (paginated), by a single
// day or by an inclusive day range. Without any filter today's invoices are
// returned.
type InvoiceFilterRequest struct {
	Vehicle string `form:"vehicle"`
	Date    string `form:"date"`
	Start   string `form:"start"`
	End     string `form:"end"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
