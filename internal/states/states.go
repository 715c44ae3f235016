// Package states provides the static registry of Indian state and union
// territory jurisdiction codes used for GST place-of-supply resolution.
// The tables are immutable for the process lifetime and safe for concurrent
// use. Lookups never fail: unresolved input falls back to DefaultCode, and
// callers must treat that as a first-class outcome.
package states

import (
	"regexp"
	"strings"
)

// DefaultCode is the fallback jurisdiction when nothing can be resolved from
// the input (Maharashtra, the most common seller registration).
const DefaultCode = "27"

// Kind distinguishes states from union territories.
type Kind string

const (
	KindState          Kind = "state"
	KindUnionTerritory Kind = "union_territory"
)

// StateInfo describes one entry of the jurisdiction table.
type StateInfo struct {
	Code      string
	Name      string
	ShortName string
	Kind      Kind
}

// All is the complete list of Indian states and union territories with their
// GST jurisdiction codes.
var All = []StateInfo{
	{Code: "01", Name: "Jammu and Kashmir", ShortName: "JK", Kind: KindUnionTerritory},
	{Code: "02", Name: "Himachal Pradesh", ShortName: "HP", Kind: KindState},
	{Code: "03", Name: "Punjab", ShortName: "PB", Kind: KindState},
	{Code: "04", Name: "Chandigarh", ShortName: "CH", Kind: KindUnionTerritory},
	{Code: "05", Name: "Uttarakhand", ShortName: "UK", Kind: KindState},
	{Code: "06", Name: "Haryana", ShortName: "HR", Kind: KindState},
	{Code: "07", Name: "Delhi", ShortName: "DL", Kind: KindUnionTerritory},
	{Code: "08", Name: "Rajasthan", ShortName: "RJ", Kind: KindState},
	{Code: "09", Name: "Uttar Pradesh", ShortName: "UP", Kind: KindState},
	{Code: "10", Name: "Bihar", ShortName: "BR", Kind: KindState},
	{Code: "11", Name: "Sikkim", ShortName: "SK", Kind: KindState},
	{Code: "12", Name: "Arunachal Pradesh", ShortName: "AR", Kind: KindState},
	{Code: "13", Name: "Nagaland", ShortName: "NL", Kind: KindState},
	{Code: "14", Name: "Manipur", ShortName: "MN", Kind: KindState},
	{Code: "15", Name: "Mizoram", ShortName: "MZ", Kind: KindState},
	{Code: "16", Name: "Tripura", ShortName: "TR", Kind: KindState},
	{Code: "17", Name: "Meghalaya", ShortName: "ML", Kind: KindState},
	{Code: "18", Name: "Assam", ShortName: "AS", Kind: KindState},
	{Code: "19", Name: "West Bengal", ShortName: "WB", Kind: KindState},
	{Code: "20", Name: "Jharkhand", ShortName: "JH", Kind: KindState},
	{Code: "21", Name: "Odisha", ShortName: "OD", Kind: KindState},
	{Code: "22", Name: "Chhattisgarh", ShortName: "CG", Kind: KindState},
	{Code: "23", Name: "Madhya Pradesh", ShortName: "MP", Kind: KindState},
	{Code: "24", Name: "Gujarat", ShortName: "GJ", Kind: KindState},
	{Code: "25", Name: "Daman and Diu", ShortName: "DD", Kind: KindUnionTerritory},
	{Code: "26", Name: "Dadra and Nagar Haveli and Daman and Diu", ShortName: "DN", Kind: KindUnionTerritory},
	{Code: "27", Name: "Maharashtra", ShortName: "MH", Kind: KindState},
	{Code: "28", Name: "Andhra Pradesh", ShortName: "AP", Kind: KindState},
	{Code: "29", Name: "Karnataka", ShortName: "KA", Kind: KindState},
	{Code: "30", Name: "Goa", ShortName: "GA", Kind: KindState},
	{Code: "31", Name: "Lakshadweep", ShortName: "LD", Kind: KindUnionTerritory},
	{Code: "32", Name: "Kerala", ShortName: "KL", Kind: KindState},
	{Code: "33", Name: "Tamil Nadu", ShortName: "TN", Kind: KindState},
	{Code: "34", Name: "Puducherry", ShortName: "PY", Kind: KindUnionTerritory},
	{Code: "35", Name: "Andaman and Nicobar Islands", ShortName: "AN", Kind: KindUnionTerritory},
	{Code: "36", Name: "Telangana", ShortName: "TS", Kind: KindState},
	{Code: "37", Name: "Andhra Pradesh (New)", ShortName: "AD", Kind: KindState},
	{Code: "38", Name: "Ladakh", ShortName: "LA", Kind: KindUnionTerritory},
	{Code: "97", Name: "Other Territory", ShortName: "OT", Kind: KindUnionTerritory},
	{Code: "99", Name: "Centre Jurisdiction", ShortName: "CJ", Kind: KindUnionTerritory},
}

var (
	byCode      = make(map[string]StateInfo)
	byName      = make(map[string]StateInfo)
	byShortName = make(map[string]StateInfo)
)

func init() {
	for _, s := range All {
		byCode[s.Code] = s
		byName[strings.ToLower(s.Name)] = s
		byShortName[strings.ToLower(s.ShortName)] = s
	}
}

// ByCode returns the entry for a 2-digit jurisdiction code. Single-digit
// input is zero-padded.
func ByCode(code string) (StateInfo, bool) {
	if len(code) == 1 {
		code = "0" + code
	}
	s, ok := byCode[code]
	return s, ok
}

// IsValid reports whether a jurisdiction code is known.
func IsValid(code string) bool {
	_, ok := ByCode(code)
	return ok
}

// CodeForName resolves a state name (case-insensitive, partial matches
// allowed) to its jurisdiction code, defaulting to DefaultCode.
func CodeForName(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	if cleaned == "" {
		return DefaultCode
	}
	if s, ok := byName[cleaned]; ok {
		return s.Code
	}
	if s, ok := byShortName[cleaned]; ok {
		return s.Code
	}
	for _, s := range All {
		lower := strings.ToLower(s.Name)
		if strings.Contains(lower, cleaned) || strings.Contains(cleaned, strings.Split(lower, " ")[0]) {
			return s.Code
		}
	}
	return DefaultCode
}

// NameForCode returns the human-readable state name for a code, or "Unknown".
func NameForCode(code string) string {
	if s, ok := ByCode(code); ok {
		return s.Name
	}
	return "Unknown"
}

// cityCodes maps common Indian city names to their state codes.
var cityCodes = map[string]string{
	"mumbai":         "27",
	"pune":           "27",
	"nagpur":         "27",
	"delhi":          "07",
	"new delhi":      "07",
	"gurgaon":        "06",
	"gurugram":       "06",
	"noida":          "09",
	"bangalore":      "29",
	"bengaluru":      "29",
	"chennai":        "33",
	"hyderabad":      "36",
	"kolkata":        "19",
	"ahmedabad":      "24",
	"surat":          "24",
	"jaipur":         "08",
	"lucknow":        "09",
	"kanpur":         "09",
	"indore":         "23",
	"bhopal":         "23",
	"patna":          "10",
	"chandigarh":     "04",
	"ludhiana":       "03",
	"kochi":          "32",
	"coimbatore":     "33",
	"visakhapatnam":  "28",
	"vijayawada":     "37",
}

// CodeForCity resolves a city name to its state code. The empty string means
// the city is not in the table.
func CodeForCity(city string) string {
	return cityCodes[strings.ToLower(strings.TrimSpace(city))]
}

var pinRe = regexp.MustCompile(`\b([1-9][0-9]{5})\b`)

// CodeFromAddress extracts a jurisdiction code from free-form address text.
// It tries city substrings first, then state-name substrings, then the
// PIN-code zone table, and finally DefaultCode.
func CodeFromAddress(address string) string {
	lower := strings.ToLower(address)

	for city, code := range cityCodes {
		if strings.Contains(lower, city) {
			return code
		}
	}

	for _, s := range All {
		if strings.Contains(lower, strings.ToLower(s.Name)) {
			return s.Code
		}
	}

	if m := pinRe.FindStringSubmatch(address); m != nil {
		return codeFromPIN(m[1])
	}

	return DefaultCode
}

// pinZones maps the first two digits of a PIN code to the state it belongs
// to. Postal zones do not align perfectly with states; this is the same
// approximation the tax-return tooling uses.
var pinZones = map[string]string{
	"11": "07", "12": "06", "13": "03", "14": "04", "15": "01",
	"16": "02", "17": "02",
	"18": "09", "19": "09", "20": "09", "21": "09", "22": "09",
	"23": "09", "24": "09", "26": "09", "27": "09", "28": "09",
	"25": "08", "30": "08", "31": "08", "32": "08", "33": "08", "34": "08",
	"36": "24", "37": "24", "38": "24", "39": "24",
	"40": "27", "41": "27", "42": "27", "43": "27", "44": "27",
	"45": "23", "46": "23", "47": "23", "48": "23",
	"49": "22",
	"50": "36",
	"51": "28", "52": "28", "53": "28",
	"56": "29", "57": "29", "58": "29", "59": "29",
	"60": "33", "61": "33", "62": "33", "63": "33", "64": "33",
	"67": "32", "68": "32", "69": "32",
	"70": "19", "71": "19", "72": "19", "73": "19", "74": "19",
	"75": "21", "76": "21", "77": "21",
	"78": "18",
	"79": "12",
	"80": "10", "81": "10", "82": "10", "84": "10",
	"83": "20", "85": "20",
}

func codeFromPIN(pin string) string {
	if code, ok := pinZones[pin[:2]]; ok {
		return code
	}
	return DefaultCode
}
