package seed

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
)

func TestGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(42).Clients(30)
	b := NewGenerator(42).Clients(30)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different clients")
	}

	c := NewGenerator(43).Clients(30)
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical clients")
	}
}

func TestGeneratorClientInvariants(t *testing.T) {
	zones := map[string]bool{}
	for _, z := range DefaultZones() {
		zones[z.Name] = true
	}

	for i, c := range NewGenerator(7).Clients(200) {
		if c.ID != i {
			t.Fatalf("client %d has id %d", i, c.ID)
		}
		if !domain.ValidBinCount(c.TrashBins) || !domain.ValidBinCount(c.RecycleBins) {
			t.Fatalf("client %d bins out of range: %d/%d", i, c.TrashBins, c.RecycleBins)
		}
		if c.Actions != 2*(c.TrashBins+c.RecycleBins) {
			t.Fatalf("client %d actions = %d", i, c.Actions)
		}
		if c.MonthlyCost != 60+20*(c.TrashBins-1)+20*(c.RecycleBins-1) {
			t.Fatalf("client %d monthly cost = %d", i, c.MonthlyCost)
		}
		if !c.FirstService {
			t.Fatalf("client %d should start in first service", i)
		}
		if !zones[c.Zone] {
			t.Fatalf("client %d in unknown zone %q", i, c.Zone)
		}
		if math.Abs(c.Location.Lat-DefaultCenter.Lat) > DefaultJitter || math.Abs(c.Location.Lng-DefaultCenter.Lng) > DefaultJitter {
			t.Fatalf("client %d outside service area: %+v", i, c.Location)
		}
	}
}

func TestLoadClients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	body := `[
		{"id": 1, "lat": 33.61, "lng": -111.93, "zone": "Zone 1", "trash_bins": 2, "recycle_bins": 1},
		{"id": 2, "lat": 33.80, "lng": -111.90, "zone": "Zone 2", "trash_bins": 1, "recycle_bins": 1}
	]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadClients(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d clients, want 2", len(got))
	}
	if got[0].MonthlyCost != 80 || got[0].Actions != 6 {
		t.Fatalf("client 1 billing = %d/%d, want 80/6", got[0].MonthlyCost, got[0].Actions)
	}
}

func TestLoadClientsRejectsBadSeeds(t *testing.T) {
	tests := map[string]string{
		"duplicate": `[{"id":1,"zone":"Zone 1","trash_bins":1,"recycle_bins":1},{"id":1,"zone":"Zone 1","trash_bins":1,"recycle_bins":1}]`,
		"no zone":   `[{"id":1,"zone":" ","trash_bins":1,"recycle_bins":1}]`,
		"bins":      `[{"id":1,"zone":"Zone 1","trash_bins":3,"recycle_bins":1}]`,
		"lat":       `[{"id":1,"lat":200,"lng":-111.93,"zone":"Zone 1","trash_bins":1,"recycle_bins":1}]`,
		"lng":       `[{"id":1,"lat":33.6,"lng":-181,"zone":"Zone 1","trash_bins":1,"recycle_bins":1}]`,
		"json":      `{`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "clients.json")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadClients(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
