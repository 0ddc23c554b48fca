package bureau

import id "prequal/pkg/domain"

// Scenario is one guided demo journey through the fixture data.
type Scenario struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phone       id.Phone `json:"telephone"`
	Description string   `json:"scenario_description"`
	Expected    string   `json:"expected_outcome"`
}

// DemoScenarios lists the guided journeys, one per fixture profile.
func DemoScenarios() []Scenario {
	return []Scenario{
		{ID: "scenario_a", Name: "Rohit Sharma", Phone: "+919812345678", Description: "PQ Success – clean profile", Expected: "3+ eligible lenders, all PQ offers"},
		{ID: "scenario_b", Name: "Anita Desai", Phone: "+919811234567", Description: "PQ Fail – low score & DPD", Expected: "0 eligible lenders, multiple failure reasons"},
		{ID: "scenario_c", Name: "Mohammed Iqbal", Phone: "+919876543210", Description: "PQ Fail – high enquiries", Expected: "Limited eligible lenders due to enquiry limits"},
		{ID: "scenario_d", Name: "Leena Kapoor", Phone: "+919812367890", Description: "Stale Scrub (>90d)", Expected: "Offers shown but greyed out with stale data warning"},
		{ID: "scenario_e", Name: "Vikas Jain", Phone: "+919876512345", Description: "NTC user (no score)", Expected: "Only NTC-accepting lenders eligible"},
		{ID: "scenario_f", Name: "Sneha Patel", Phone: "+919867890123", Description: "Pre-Approved candidate", Expected: "2+ Pre-Approved offers + PQ offers"},
	}
}
