package googleplaces

// placeResponse ответ Places API (New) с маской regularOpeningHours
type placeResponse struct {
	RegularOpeningHours *openingHours `json:"regularOpeningHours"`
}

type openingHours struct {
	OpenNow             *bool    `json:"openNow,omitempty"`
	Periods             []period `json:"periods"`
	WeekdayDescriptions []string `json:"weekdayDescriptions,omitempty"`
}

// period интервал работы; Close отсутствует у круглосуточных мест
type period struct {
	Open  point  `json:"open"`
	Close *point `json:"close,omitempty"`
}

// point день недели (0 = воскресенье) и время
type point struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ErrorResponse модель ошибки Google API
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
