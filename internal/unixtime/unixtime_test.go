package unixtime

import "testing"

func TestFromDateTime(t *testing.T) {
	tests := []struct {
		year, month, day, hour, min, sec int
		want                             int64
	}{
		{1970, 1, 1, 0, 0, 0, 0},
		{2019, 1, 1, 0, 0, 0, 1546300800},
		{2020, 3, 29, 1, 0, 0, 1585443600},
		{2020, 10, 25, 1, 0, 0, 1603587600},
		{2000, 2, 29, 12, 30, 45, 951827445},
		{1883, 11, 18, 19, 0, 0, -2717643600},
		{1969, 12, 31, 23, 59, 59, -1},
	}
	for _, tt := range tests {
		got := FromDateTime(tt.year, tt.month, tt.day, tt.hour, tt.min, tt.sec)
		if got != tt.want {
			t.Errorf("FromDateTime(%d, %d, %d, %d, %d, %d) = %d, want %d",
				tt.year, tt.month, tt.day, tt.hour, tt.min, tt.sec, got, tt.want)
		}
	}
}

func TestYearStart(t *testing.T) {
	tests := []struct {
		year int
		want int64
	}{
		{1970, 0},
		{2020, 1577836800},
		{2021, 1609459200},
		{1900, -2208988800},
	}
	for _, tt := range tests {
		if got := YearStart(tt.year); got != tt.want {
			t.Errorf("YearStart(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}
