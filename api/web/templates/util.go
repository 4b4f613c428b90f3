package templates

// PageData is what the wallpaper page is rendered with
type PageData struct {
	Lang             string
	Title            string
	Src              string
	Alt              string
	AttributionURL   string
	AttributionLabel string
	Status           string
	StatusIsError    bool
	StatusVisible    bool
	PollSeconds      int
}
