package request

// DailyReportRequest selects the day to summarise, today when empty
type DailyReportRequest struct {
	Date string `form:"date"`
}

// ExportReportRequest writes a daily report file into the configured
// output directory. Only the CLI may choose another directory.
type ExportReportRequest struct {
	Date string `json:"date" binding:"required"`
}
