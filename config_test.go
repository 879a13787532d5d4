package serial

import "testing"

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaudRate != 115200 {
		t.Errorf("Expected BaudRate 115200, got %d", config.BaudRate)
	}

	if config.ReadTimeoutTenths != 2 {
		t.Errorf("Expected ReadTimeoutTenths 2, got %d", config.ReadTimeoutTenths)
	}
}

func TestWithBaudRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    int
		wantErr bool
	}{
		{"9600 (valid)", 9600, false},
		{"115200 (valid)", 115200, false},
		{"921600 (valid)", 921600, false},
		{"123456 (invalid)", 123456, true},
		{"0 (invalid)", 0, true},
		{"-9600 (invalid)", -9600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithBaudRate(tt.rate)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithBaudRate(%d) error = %v, wantErr %v", tt.rate, err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidBaudRate {
				t.Errorf("Expected ErrInvalidBaudRate, got %v", err)
			}
			if err == nil && config.BaudRate != tt.rate {
				t.Errorf("BaudRate = %d, want %d", config.BaudRate, tt.rate)
			}
		})
	}
}

func TestWithReadTimeout(t *testing.T) {
	tests := []struct {
		name    string
		tenths  int
		wantErr bool
	}{
		{"0 (non-blocking)", 0, false},
		{"2 (default)", 2, false},
		{"255 (max)", 255, false},
		{"256 (exceeds max)", 256, true},
		{"-1 (negative)", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			err := WithReadTimeout(tt.tenths)(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithReadTimeout(%d) error = %v, wantErr %v", tt.tenths, err, tt.wantErr)
			}
			if err == nil && config.ReadTimeoutTenths != tt.tenths {
				t.Errorf("ReadTimeoutTenths = %d, want %d", config.ReadTimeoutTenths, tt.tenths)
			}
		})
	}
}

func TestBaudRatesSorted(t *testing.T) {
	rates := BaudRates()
	if len(rates) == 0 {
		t.Fatal("BaudRates returned no rates")
	}
	for i := 1; i < len(rates); i++ {
		if rates[i-1] >= rates[i] {
			t.Errorf("Rates not strictly ascending: %d >= %d", rates[i-1], rates[i])
		}
	}
	for _, want := range []int{9600, 115200, 921600} {
		found := false
		for _, r := range rates {
			if r == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected baud rate %d in BaudRates()", want)
		}
	}
}
