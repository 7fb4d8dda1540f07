package model

import "fmt"

// DriverRecord is one row of the hypothetical qualifying table.
type DriverRecord struct {
	FullName       string  `json:"fullName"`
	Code           string  `json:"code"`
	QualifyingTime float64 `json:"qualifyingTime"`
}

// LapSample is one completed race lap. All times are in seconds.
type LapSample struct {
	Year        int     `json:"year"`
	Driver      string  `json:"driver"`
	LapTime     float64 `json:"lapTime"`
	SectorTime1 float64 `json:"sectorTime1"`
	SectorTime2 float64 `json:"sectorTime2"`
	SectorTime3 float64 `json:"sectorTime3"`
}

type DriverAverage struct {
	Driver      string  `json:"driver"`
	Laps        int     `json:"laps"`
	LapTime     float64 `json:"lapTime"`
	SectorTime1 float64 `json:"sectorTime1"`
	SectorTime2 float64 `json:"sectorTime2"`
	SectorTime3 float64 `json:"sectorTime3"`
}

// FeatureRow joins a DriverRecord with the historical averages of the same driver.
// LapTime is the regression target.
type FeatureRow struct {
	Driver         string  `json:"driver"`
	FullName       string  `json:"fullName"`
	QualifyingTime float64 `json:"qualifyingTime"`
	SectorTime1    float64 `json:"sectorTime1"`
	SectorTime2    float64 `json:"sectorTime2"`
	SectorTime3    float64 `json:"sectorTime3"`
	LapTime        float64 `json:"lapTime"`
}

// Features returns the row in feature column order.
func (fr FeatureRow) Features() []float64 {
	return []float64{fr.QualifyingTime, fr.SectorTime1, fr.SectorTime2, fr.SectorTime3}
}

type PredictionResult struct {
	Driver           string  `json:"driver"`
	FullName         string  `json:"fullName"`
	PredictedLapTime float64 `json:"predictedLapTime"`
}

func (pr PredictionResult) String() string {
	return fmt.Sprintf("%s %.3f", pr.Driver, pr.PredictedLapTime)
}
