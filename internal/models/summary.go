package models

// Summary is the dashboard aggregate returned by GET /summary.
type Summary struct {
	Equipamentos struct {
		Total  int `json:"total"`
		Ativos int `json:"ativos"`
		EmObra int `json:"em_obra"`
	} `json:"equipamentos"`
	Viaturas struct {
		Total  int `json:"total"`
		Ativas int `json:"ativas"`
		EmObra int `json:"em_obra"`
	} `json:"viaturas"`
	Materiais struct {
		Total      int     `json:"total"`
		StockTotal float64 `json:"stock_total"`
	} `json:"materiais"`
	Obras struct {
		Total  int `json:"total"`
		Ativas int `json:"ativas"`
	} `json:"obras"`
	Alerts []Alert `json:"alerts"`
}

// Alert is a dashboard notice; Urgent drives the red treatment, otherwise advisory.
type Alert struct {
	Item    string `json:"item"`
	Message string `json:"message"`
	Urgent  bool   `json:"urgent"`
}

// AlertCheck is the response of GET /alerts/check.
type AlertCheck struct {
	Alerts []Alert `json:"alerts"`
	Total  int     `json:"total"`
}

// UrgentCount returns how many alerts are urgent.
func (s Summary) UrgentCount() int {
	n := 0
	for _, a := range s.Alerts {
		if a.Urgent {
			n++
		}
	}
	return n
}
