package request

const DefaultType = "wine-tasting"

type Event struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	Time        string `json:"time"        validate:"required,datetime=15:04"`
	Type        string `json:"type"`
}
