package model

// Fuels holds the market conditions for a single planning snapshot.
type Fuels struct {
	Gas      float64 `json:"gas(euro/MWh)"`
	Kerosine float64 `json:"kerosine(euro/MWh)"`
	CO2      float64 `json:"co2(euro/ton)"`
	Wind     float64 `json:"wind(%)"` // wind availability between 0 and 100
}

// Validate checks that prices are non-negative and wind is a percentage.
func (f Fuels) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if f.Gas < 0 {
		errs.Add("gas(euro/MWh)", "Ensure this value is greater than or equal to 0.")
	}
	if f.Kerosine < 0 {
		errs.Add("kerosine(euro/MWh)", "Ensure this value is greater than or equal to 0.")
	}
	if f.CO2 < 0 {
		errs.Add("co2(euro/ton)", "Ensure this value is greater than or equal to 0.")
	}
	if f.Wind < 0 || f.Wind > 100 {
		errs.Add("wind(%)", "Ensure this value is between 0 and 100.")
	}
	return errs
}
