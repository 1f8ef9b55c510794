package loadbalancer

import (
	"os"
	"testing"

	"github.com/stokq/stock-ledger/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("gateway-test", true)
	logger.SetLevel("error")
	os.Exit(m.Run())
}

func TestNextCyclesThroughServers(t *testing.T) {
	servers := []string{"http://a:8082", "http://b:8082", "http://c:8082"}
	rr := NewRoundRobin(servers)

	for i := 0; i < 6; i++ {
		want := servers[i%len(servers)]
		if got := rr.Next(); got != want {
			t.Errorf("call %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestEmptyServerListFallsBack(t *testing.T) {
	rr := NewRoundRobin(nil)

	if got := rr.Next(); got == "" {
		t.Error("expected fallback server, got empty string")
	}
}

func TestAddAndRemoveServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8082"})

	rr.AddServer("http://b:8082")
	if len(rr.GetServers()) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(rr.GetServers()))
	}

	rr.RemoveServer("http://a:8082")
	servers := rr.GetServers()
	if len(servers) != 1 || servers[0] != "http://b:8082" {
		t.Errorf("unexpected servers after removal: %v", servers)
	}

	// Next must not go out of range after removal
	if got := rr.Next(); got != "http://b:8082" {
		t.Errorf("expected remaining server, got %s", got)
	}
}
