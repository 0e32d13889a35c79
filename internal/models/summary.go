package models

type SummarizeRequest struct {
	Text          string  `json:"text"`
	SummaryType   string  `json:"summary_type"`
	SummaryLength FlexInt `json:"summary_length"`
}
