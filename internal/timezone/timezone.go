package timezone

import "time"

// Datas de agenda são exibidas e consultadas no fuso da operação;
// os instantes persistidos são sempre UTC.
const DefaultTimezone = "America/Sao_Paulo"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
