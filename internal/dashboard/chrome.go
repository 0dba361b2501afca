package dashboard

// Page chrome shared by every surface.
const (
	PageTitle        = "Loan Dashboard"
	PageIcon         = "🎨"
	Headline         = "Financial Insights Dashboard: Loan Performance & Trends"
	SidebarHeader    = "Dashboard Filters and Features"
	SectionCondition = "Loan Condition"
	SectionAnalysis  = "Analysis"
	SelectLabel      = "Select Loan Condition"
)

// Feature is one sidebar entry.
type Feature struct {
	Name        string
	Description string
}

// Features describes the dashboard sections in the sidebar.
var Features = []Feature{
	{"Overview", "Provides a summary of key loan metrics."},
	{"Time-Based Analysis", "Shows trends over time and loan amounts."},
	{"Loan Performance", "Analyzes loan conditions and distributions."},
	{"Financial Analysis", "Examines loan amounts and distributions based on conditions."},
}

// PanelID names a chart panel. IDs double as export file stems and URL path
// segments.
type PanelID string

// Chart panels in page order.
const (
	PanelIssued    PanelID = "issued"
	PanelAmount    PanelID = "amount"
	PanelWeekday   PanelID = "weekday"
	PanelCondition PanelID = "condition"
	PanelGrade     PanelID = "grade"
	PanelHistogram PanelID = "histogram"
	PanelBoxPlot   PanelID = "boxplot"
)

// Panel carries the display text of one chart.
type Panel struct {
	ID     PanelID
	Tab    string // tab caption, empty when the panel is not tabbed
	Title  string
	XLabel string
	YLabel string
	Legend string // legend title for per-term series
}

// Panels lists every chart panel in page order.
var Panels = []Panel{
	{ID: PanelIssued, Tab: "Loan Issued Over Time", Title: "Number of Loan Issued Over Time",
		XLabel: "Issue Date", YLabel: "Number of Loans"},
	{ID: PanelAmount, Tab: "Loan Amount Over Time", Title: "Number of Loan Amount Over Time",
		XLabel: "Issue Date", YLabel: "Amount of Loans"},
	{ID: PanelWeekday, Tab: "Issue Date Analysis", Title: "Distribution of Loans by Day Issuance",
		XLabel: "Day of Issuance", YLabel: "Number of Loans"},
	{ID: PanelCondition, Title: "Loan Portion by Condition"},
	{ID: PanelGrade, Title: "Distribution of Loans by Grade",
		XLabel: "Grade", YLabel: "Number of Loans"},
	{ID: PanelHistogram, Tab: "Loan Amount Distribution", Title: "Loan Amount Distribution",
		XLabel: "Loan Amount", YLabel: "Count", Legend: "Loan Term"},
	{ID: PanelBoxPlot, Tab: "Loan Amount Distribution by Purpose", Title: "Loan Amount by Purpose & Term",
		XLabel: "Loan Purpose", YLabel: "Loan Amount", Legend: "Term"},
}

// LookupPanel returns the panel with the given id.
func LookupPanel(id PanelID) (Panel, bool) {
	for _, p := range Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}
