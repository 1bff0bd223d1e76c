package dialog

import "testing"

func TestCanTransition(t *testing.T) {
	graph := DefaultGraph()

	t.Run("nil from permits any target", func(t *testing.T) {
		if !graph.CanTransition(nil, StateAdminMenu) {
			t.Error("bootstrap transition should be allowed")
		}
		if !graph.CanTransition(nil, StateWorkLogEdit) {
			t.Error("bootstrap transition should be allowed for any vertex")
		}
	})

	t.Run("authored edge allowed", func(t *testing.T) {
		from := StateSitesList
		if !graph.CanTransition(&from, StateSiteDetails) {
			t.Error("SITES_LIST -> SITE_DETAILS should be allowed")
		}
	})

	t.Run("unknown from denies", func(t *testing.T) {
		from := State("NO_SUCH_STATE")
		if graph.CanTransition(&from, StateAdminMenu) {
			t.Error("unknown from state must deny")
		}
	})

	t.Run("closure: absent pairs deny", func(t *testing.T) {
		// Exhaustively verify that only authored adjacency passes.
		vertices := make(map[State]struct{})
		for from, targets := range graph {
			vertices[from] = struct{}{}
			for _, to := range targets {
				vertices[to] = struct{}{}
			}
		}

		for from := range vertices {
			allowed := make(map[State]struct{})
			for _, to := range graph[from] {
				allowed[to] = struct{}{}
			}
			f := from
			for to := range vertices {
				_, want := allowed[to]
				if got := graph.CanTransition(&f, to); got != want {
					t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
				}
			}
		}
	})
}
