package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Formatos de fecha aceptados por los importadores CSV, probados en orden
var (
	dateSlashPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dateDashPattern  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	dateISOPattern   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dateWordPattern  = regexp.MustCompile(`^(\d{1,2})\s+([a-zA-Z]+)\s+(\d{4})$`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseFlexibleDate interpreta fechas en DD/MM/YYYY, DD-MM-YYYY, YYYY-MM-DD
// o "DD MonthName YYYY". Devuelve nil si ningún formato coincide o si la
// fecha construida no hace round-trip (ej. 31/02/2024).
func ParseFlexibleDate(dateStr string) *time.Time {
	cleaned := strings.TrimSpace(dateStr)

	var day, month, year int

	if m := dateSlashPattern.FindStringSubmatch(cleaned); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
	} else if m := dateDashPattern.FindStringSubmatch(cleaned); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
	} else if m := dateISOPattern.FindStringSubmatch(cleaned); m != nil {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	} else if m := dateWordPattern.FindStringSubmatch(cleaned); m != nil {
		monthName, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return nil
		}
		day, _ = strconv.Atoi(m[1])
		month = int(monthName)
		year, _ = strconv.Atoi(m[3])
	} else {
		return nil
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// time.Date normaliza fechas imposibles (31/02 -> 02/03): verificamos
	// que día/mes/año hagan round-trip
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return nil
	}

	return &date
}

var currencySymbols = strings.NewReplacer("€", "", "$", "", "£", "", "¥", "")

// ParseFlexibleNumber normaliza números con convenciones europeas o
// anglosajonas: si aparecen punto y coma, el separador más a la derecha es
// el decimal; una coma sola es decimal solo con ≤2 dígitos detrás; un punto
// solo es separador de miles con >2 dígitos detrás.
func ParseFlexibleNumber(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(currencySymbols.Replace(raw))
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, false
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			// Formato europeo: 1.234,56
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// Formato anglosajón: 1,234.56
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasDot:
		parts := strings.Split(cleaned, ".")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// 1234.56 ya es decimal
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	// Pasada final: quitar cualquier carácter que no sea dígito, signo o punto
	// y colapsar puntos decimales múltiples
	var b strings.Builder
	seenDot := false
	for i, r := range cleaned {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
