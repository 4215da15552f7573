package rules

import "fmt"

// ScoreTable holds the points awarded per tile, shield and bordered city
type ScoreTable struct {
	CityTile        int
	CityShield      int
	RoadTile        int
	CloisterTile    int
	EndCityTile     int
	EndCityShield   int
	EndRoadTile     int
	EndCloisterTile int
	FarmCity        int
}

// DefaultScoreTable returns the standard scoring
func DefaultScoreTable() ScoreTable {
	return ScoreTable{
		CityTile:        2,
		CityShield:      2,
		RoadTile:        1,
		CloisterTile:    1,
		EndCityTile:     1,
		EndCityShield:   1,
		EndRoadTile:     1,
		EndCloisterTile: 1,
		FarmCity:        3,
	}
}

// Validate rejects negative point values
func (st ScoreTable) Validate() error {
	values := map[string]int{
		"city_tile":         st.CityTile,
		"city_shield":       st.CityShield,
		"road_tile":         st.RoadTile,
		"cloister_tile":     st.CloisterTile,
		"end_city_tile":     st.EndCityTile,
		"end_city_shield":   st.EndCityShield,
		"end_road_tile":     st.EndRoadTile,
		"end_cloister_tile": st.EndCloisterTile,
		"farm_city":         st.FarmCity,
	}
	for name, v := range values {
		if v < 0 {
			return fmt.Errorf("score table %s must not be negative, got %d", name, v)
		}
	}
	return nil
}
