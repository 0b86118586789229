package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"winedash/internal/charts"
	"winedash/internal/dataset"
	"winedash/internal/engine"
	"winedash/internal/export"
)

type download struct {
	ext   string
	mime  string
	write func(*bytes.Buffer, *engine.ColumnStore) error
}

var downloads = map[string]download{
	"csv": {".csv", "text/csv", func(b *bytes.Buffer, cs *engine.ColumnStore) error {
		return export.WriteCSV(b, cs.Wines())
	}},
	"xlsx": {".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", func(b *bytes.Buffer, cs *engine.ColumnStore) error {
		return export.WriteXLSX(b, cs.Wines())
	}},
	"arrow": {".arrow", "application/vnd.apache.arrow.stream", func(b *bytes.Buffer, cs *engine.ColumnStore) error {
		return cs.WriteArrow(b)
	}},
}

func etag(body []byte) string {
	return `"` + strconv.FormatUint(xxh3.Hash(body), 16) + `"`
}

// blob writes body with a content hash ETag, honoring If-None-Match.
func blob(c echo.Context, mime string, body []byte) error {
	tag := etag(body)
	c.Response().Header().Set("ETag", tag)
	if c.Request().Header.Get("If-None-Match") == tag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, mime, body)
}

// Export downloads the filtered subset as csv, xlsx or arrow.
func (h *Handler) Export(c echo.Context) error {
	d, ok := downloads[c.Param("format")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown export format %q", c.Param("format")))
	}
	sub, err := h.filtered(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := d.write(&buf, sub); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", dataset.FileName+d.ext))
	return blob(c, d.mime, buf.Bytes())
}

var chartRenderers = map[string]func(*bytes.Buffer, *engine.ColumnStore) error{
	"scatter.png": func(b *bytes.Buffer, cs *engine.ColumnStore) error {
		return charts.Scatter(b, cs)
	},
	"price-box.png": func(b *bytes.Buffer, cs *engine.ColumnStore) error {
		return charts.PriceBox(b, cs)
	},
	"avg-price.png": func(b *bytes.Buffer, cs *engine.ColumnStore) error {
		groups, err := engine.GroupMeans(cs, engine.Province, engine.Price)
		if err != nil {
			return err
		}
		return charts.Bar(b, "Average Price by Province", groups)
	},
	"avg-points.png": func(b *bytes.Buffer, cs *engine.ColumnStore) error {
		groups, err := engine.GroupMeans(cs, engine.Province, engine.Points)
		if err != nil {
			return err
		}
		return charts.Bar(b, "Average Ratings by Province", groups)
	},
}

func (h *Handler) Chart(c echo.Context) error {
	render, ok := chartRenderers[c.Param("name")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown chart %q", c.Param("name")))
	}
	sub, err := h.filtered(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render(&buf, sub); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "not enough data").SetInternal(err)
		}
		return err
	}
	return blob(c, "image/png", buf.Bytes())
}
