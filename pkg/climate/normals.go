package climate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// monthNormal is a climatological min/max pair for one month in one
// latitude band, loaded from the optional normals workbook.
type monthNormal struct {
	TMin float64
	TMax float64
}

type Normals struct {
	// band lower-latitude -> month (1-12) -> normal
	bands map[int][12]monthNormal
}

// Default normals for a temperate Mediterranean climate (USDA zone 8-9),
// used when no workbook is configured. The bootstrapper falls back to this
// assumption when a plant has no coordinates and the user no geolocation.
var temperateDefaults = [12]monthNormal{
	{3, 12}, {4, 13}, {6, 16}, {9, 19}, {13, 24}, {17, 28},
	{20, 31}, {20, 31}, {16, 27}, {12, 22}, {7, 16}, {4, 12},
}

// LoadXLSX reads monthly temperature normals per latitude band from a
// workbook. Rows: band start latitude, month, tmin, tmax. Header aliases
// are tolerated; malformed rows are skipped.
func LoadXLSX(path string) (*Normals, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	rows, err := x.GetRows(x.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("normals sheet empty")
	}

	norm := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		col[norm(h)] = i
	}
	find := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := col[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	cBand := find("band", "latband", "latitude")
	cMonth := find("month", "m")
	cMin := find("tmin", "mintemp", "tminc")
	cMax := find("tmax", "maxtemp", "tmaxc")
	if cBand == -1 || cMonth == -1 || cMin == -1 || cMax == -1 {
		return nil, fmt.Errorf("normals sheet missing columns, found headers: %v", rows[0])
	}

	n := &Normals{bands: map[int][12]monthNormal{}}
	for _, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}
		band, err1 := strconv.Atoi(get(cBand))
		month, err2 := strconv.Atoi(get(cMonth))
		tmin, err3 := strconv.ParseFloat(get(cMin), 64)
		tmax, err4 := strconv.ParseFloat(get(cMax), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || month < 1 || month > 12 {
			continue
		}
		months := n.bands[band]
		months[month-1] = monthNormal{TMin: tmin, TMax: tmax}
		n.bands[band] = months
	}
	if len(n.bands) == 0 {
		return nil, fmt.Errorf("no normals loaded from %s", path)
	}
	return n, nil
}

// Digest renders a climate-normal digest for the given latitude and month,
// standing in for live weather when the fetch fails or no coordinates exist.
func (n *Normals) Digest(lat *float64, m time.Month) string {
	nm := temperateDefaults[m-1]
	label := "temperate Mediterranean climate (USDA zone 8-9), assumed"
	if n != nil && lat != nil {
		if found, ok := n.lookup(*lat, m); ok {
			nm = found
			label = fmt.Sprintf("climatological normals for latitude %.0f", *lat)
		}
	}
	return fmt.Sprintf("No live weather available. %s: typical %s range %.0f°C / %.0f°C.",
		label, m.String(), nm.TMin, nm.TMax)
}

func (n *Normals) lookup(lat float64, m time.Month) (monthNormal, bool) {
	lat = math.Abs(lat)
	best, bestBand := monthNormal{}, -1
	for band, months := range n.bands {
		if float64(band) <= lat && band > bestBand {
			best, bestBand = months[m-1], band
		}
	}
	return best, bestBand >= 0
}
