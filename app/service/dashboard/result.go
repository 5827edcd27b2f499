package service

import (
	"fmt"
	"log"
	"runtime/debug"

	"student-performance-dashboard/app/chart"
	"student-performance-dashboard/app/view"
)

// Result is what every dashboard action hands back to the page: the data
// for the section, whether the section is shown, and an optional notice.
type Result[T any] struct {
	Success bool         `json:"success"`
	Visible bool         `json:"visible"`
	Data    *T           `json:"data,omitempty"`
	Notice  *view.Notice `json:"notice,omitempty"`
	// Status is the HTTP status the JSON API answers with.
	Status int `json:"-"`
}

func succeeded[T any](data *T, notice *view.Notice) Result[T] {
	return Result[T]{Success: true, Visible: true, Data: data, Notice: notice, Status: 200}
}

func failed[T any](status int, message string) Result[T] {
	return Result[T]{Status: status, Notice: view.ErrorNotice(message)}
}

// ChartRef points the page at the live instance of a slot. Version changes
// each time the slot is rebuilt.
type ChartRef struct {
	Slot      string `json:"slot"`
	Element   string `json:"element"`
	Version   uint64 `json:"version"`
	SVGURL    string `json:"svg_url"`
	ConfigURL string `json:"config_url"`
}

// chartElements maps each slot to the page element it is drawn in.
var chartElements = map[string]string{
	chart.SlotPerformance:     "performanceChart",
	chart.SlotSubjects:        "subjectChart",
	chart.SlotStudentSubjects: "studentSubjectsChart",
	chart.SlotProgress:        "progressChart",
}

func chartRef(charts *chart.Manager, slot string) ChartRef {
	v := charts.Version(slot)
	return ChartRef{
		Slot:      slot,
		Element:   chartElements[slot],
		Version:   v,
		SVGURL:    fmt.Sprintf("/charts/%s/svg?v=%d", slot, v),
		ConfigURL: fmt.Sprintf("/charts/%s/config?v=%d", slot, v),
	}
}

// safely runs a view builder, turning a panic into an error.
func safely[T any](tag string, build func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[%s] panic while rendering: %v\n%s", tag, r, debug.Stack())
			err = fmt.Errorf("%v", r)
		}
	}()
	return build()
}
