package drivers

import (
	"f1racepredictor/pkg/model"
)

// hypothetical 2025 qualifying times, in declaration order
var registry = []model.DriverRecord{
	{FullName: "Oscar Piastri", Code: "PIA", QualifyingTime: 90.641},
	{FullName: "George Russell", Code: "RUS", QualifyingTime: 90.723},
	{FullName: "Lando Norris", Code: "NOR", QualifyingTime: 90.793},
	{FullName: "Max Verstappen", Code: "VER", QualifyingTime: 90.817},
	{FullName: "Lewis Hamilton", Code: "HAM", QualifyingTime: 90.927},
	{FullName: "Charles Leclerc", Code: "LEC", QualifyingTime: 91.021},
	{FullName: "Isack Hadjar", Code: "HAD", QualifyingTime: 91.079},
	{FullName: "Andrea Kimi Antonelli", Code: "ANT", QualifyingTime: 91.103},
	{FullName: "Yuki Tsunoda", Code: "TSU", QualifyingTime: 91.638},
	{FullName: "Alexander Albon", Code: "ALB", QualifyingTime: 91.706},
	{FullName: "Esteban Ocon", Code: "OCO", QualifyingTime: 91.625},
	{FullName: "Nico Hülkenberg", Code: "HUL", QualifyingTime: 91.632},
	{FullName: "Fernando Alonso", Code: "ALO", QualifyingTime: 91.688},
	{FullName: "Lance Stroll", Code: "STR", QualifyingTime: 91.773},
	{FullName: "Carlos Sainz Jr.", Code: "SAI", QualifyingTime: 91.840},
	{FullName: "Pierre Gasly", Code: "GAS", QualifyingTime: 91.992},
	{FullName: "Oliver Bearman", Code: "BEA", QualifyingTime: 92.018},
	{FullName: "Jack Doohan", Code: "DOO", QualifyingTime: 92.092},
	{FullName: "Gabriel Bortoleto", Code: "BOR", QualifyingTime: 92.141},
	{FullName: "Liam Lawson", Code: "LAW", QualifyingTime: 92.174},
}

// Registry returns a copy of the driver table so callers can't mutate it.
func Registry() []model.DriverRecord {
	rs := make([]model.DriverRecord, len(registry))
	copy(rs, registry)
	return rs
}

func Lookup(code string) (model.DriverRecord, bool) {
	for _, r := range registry {
		if r.Code == code {
			return r, true
		}
	}
	return model.DriverRecord{}, false
}

func CodeFor(fullName string) (string, bool) {
	for _, r := range registry {
		if r.FullName == fullName {
			return r.Code, true
		}
	}
	return "", false
}
