package handler

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/beevik/etree"
)

// wantsXML reports whether the Accept header prefers XML over JSON
func wantsXML(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case "application/xml", "text/xml":
			return true
		case "application/json":
			return false
		}
	}
	return false
}

// buildTimelineXML renders a timeline as
// <forecast><point date="..." actual="..."/>...</forecast>
func buildTimelineXML(timeline []models.ForecastPoint) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("forecast")
	root.CreateAttr("points", strconv.Itoa(len(timeline)))
	for _, p := range timeline {
		point := root.CreateElement("point")
		point.CreateAttr("date", p.Date)
		if p.Actual != nil {
			point.CreateAttr("actual", formatAmount(*p.Actual))
		}
		if p.Predicted != nil {
			point.CreateAttr("predicted", formatAmount(*p.Predicted))
		}
	}
	doc.Indent(2)
	return doc
}

func writeXML(w http.ResponseWriter, status int, timeline []models.ForecastPoint) error {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	_, err := buildTimelineXML(timeline).WriteTo(w)
	return err
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
