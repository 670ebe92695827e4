//
// (C) Copyright 2023 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cache

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/daos-stack/contprops/common/test"
	"github.com/daos-stack/contprops/logging"
)

type mockItem struct {
	ItemKey            string
	ID                 string
	RefreshErr         error
	NeedsRefreshResult bool
	refreshes          int
}

func (m *mockItem) Lock() {}

func (m *mockItem) Unlock() {}

func (m *mockItem) Key() string {
	return m.ItemKey
}

func (m *mockItem) Refresh(ctx context.Context) error {
	m.refreshes++
	return m.RefreshErr
}

func (m *mockItem) NeedsRefresh() bool {
	return m.NeedsRefreshResult
}

func testMockItem(id ...string) *mockItem {
	mock := &mockItem{ItemKey: "mock"}
	if len(id) > 0 {
		mock.ID = id[0]
	}
	return mock
}

func TestCache_NewItemCache(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	ic := NewItemCache[*mockItem](log)
	if ic.items == nil {
		t.Fatal("didn't set up item map")
	}
	if ic.log != log {
		t.Fatal("didn't preserve logger")
	}
}

func TestCache_ItemCache_Set(t *testing.T) {
	for name, tc := range map[string]struct {
		nilCache      bool
		alreadyCached map[string]*mockItem
		val           *mockItem
		expErr        error
	}{
		"nil cache": {
			nilCache: true,
			val:      testMockItem(),
			expErr:   errors.New("nil"),
		},
		"nil item": {
			expErr: errors.New("invalid item"),
		},
		"empty key": {
			val:    &mockItem{},
			expErr: errors.New("invalid item"),
		},
		"cached": {
			val: testMockItem(),
		},
		"overwrite": {
			alreadyCached: map[string]*mockItem{
				"mock": testMockItem("old"),
			},
			val: testMockItem("new"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			log, buf := logging.NewTestLogger(t.Name())
			defer test.ShowBufferOnFailure(t, buf)

			var ic *ItemCache[*mockItem]
			if !tc.nilCache {
				ic = NewItemCache[*mockItem](log)
				for k, v := range tc.alreadyCached {
					ic.items[k] = v
				}
			}
			err := ic.Set(tc.val)

			test.CmpErr(t, tc.expErr, err)
			if tc.expErr != nil {
				return
			}

			item, ok := ic.items[tc.val.ItemKey]
			if !ok {
				t.Fatalf("expected %q to be cached", tc.val.ItemKey)
			}
			if diff := cmp.Diff(tc.val, item, cmp.AllowUnexported(mockItem{})); diff != "" {
				t.Fatalf("-want, +got:\n%s", diff)
			}
		})
	}
}

func TestCache_ItemCache_GetOrCreate(t *testing.T) {
	for name, tc := range map[string]struct {
		nilCache      bool
		alreadyCached *mockItem
		key           string
		createErr     error
		nilCreateFn   bool
		expErr        error
		expID         string
		expRefreshes  int
	}{
		"nil cache": {
			nilCache: true,
			key:      "mock",
			expErr:   errors.New("nil"),
		},
		"empty key": {
			expErr: errors.New("invalid key"),
		},
		"nil create fn": {
			key:         "mock",
			nilCreateFn: true,
			expErr:      errors.New("create function is required"),
		},
		"create fails": {
			key:       "mock",
			createErr: errors.New("mock create"),
			expErr:    errors.New("mock create"),
		},
		"created": {
			key:   "mock",
			expID: "created",
		},
		"cached": {
			key:           "mock",
			alreadyCached: testMockItem("cached"),
			expID:         "cached",
		},
		"cached needs refresh": {
			key:           "mock",
			alreadyCached: &mockItem{ItemKey: "mock", ID: "stale", NeedsRefreshResult: true},
			expID:         "stale",
			expRefreshes:  1,
		},
		"refresh fails": {
			key:           "mock",
			alreadyCached: &mockItem{ItemKey: "mock", NeedsRefreshResult: true, RefreshErr: errors.New("mock refresh")},
			expErr:        errors.New("mock refresh"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			log, buf := logging.NewTestLogger(t.Name())
			defer test.ShowBufferOnFailure(t, buf)

			var ic *ItemCache[*mockItem]
			if !tc.nilCache {
				ic = NewItemCache[*mockItem](log)
				if tc.alreadyCached != nil {
					ic.items[tc.alreadyCached.Key()] = tc.alreadyCached
				}
			}

			createFn := func() (*mockItem, error) {
				if tc.createErr != nil {
					return nil, tc.createErr
				}
				return testMockItem("created"), nil
			}
			if tc.nilCreateFn {
				createFn = nil
			}

			item, release, err := ic.GetOrCreate(test.MustLogContext(t, log), tc.key, createFn)
			test.CmpErr(t, tc.expErr, err)
			if release == nil {
				t.Fatal("release function must never be nil")
			}
			release()
			if tc.expErr != nil {
				return
			}

			test.AssertEqual(t, tc.expID, item.ID, "unexpected item")
			test.AssertEqual(t, tc.expRefreshes, item.refreshes, "unexpected refresh count")
			test.AssertTrue(t, ic.Has(tc.key), "item should be cached")
		})
	}
}

func TestCache_ItemCache_Get(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	ic := NewItemCache[*mockItem](log)

	_, _, err := ic.Get(test.Context(t), "mock")
	test.AssertTrue(t, IsKeyNotFound(err), "expected key not found")

	if err := ic.Set(testMockItem("one")); err != nil {
		t.Fatal(err)
	}
	item, release, err := ic.Get(test.Context(t), "mock")
	if err != nil {
		t.Fatal(err)
	}
	release()
	test.AssertEqual(t, "one", item.ID, "unexpected item")
}

func TestCache_ItemCache_Refresh(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	ic := NewItemCache[*mockItem](log)
	a := &mockItem{ItemKey: "a"}
	b := &mockItem{ItemKey: "b"}
	for _, item := range []*mockItem{a, b} {
		if err := ic.Set(item); err != nil {
			t.Fatal(err)
		}
	}

	if err := ic.Refresh(test.Context(t)); err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, 1, a.refreshes, "a refreshes")
	test.AssertEqual(t, 1, b.refreshes, "b refreshes")

	if err := ic.Refresh(test.Context(t), "b"); err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, 1, a.refreshes, "a refreshes")
	test.AssertEqual(t, 2, b.refreshes, "b refreshes")

	test.AssertTrue(t, IsKeyNotFound(ic.Refresh(test.Context(t), "c")), "expected key not found")

	b.RefreshErr = errors.New("mock refresh")
	test.CmpErr(t, errors.New("mock refresh"), ic.Refresh(test.Context(t), "b"))

	if diff := cmp.Diff([]string{"a", "b"}, ic.Keys()); diff != "" {
		t.Fatalf("unexpected keys (-want, +got):\n%s", diff)
	}
	ic.Delete("a")
	test.AssertFalse(t, ic.Has("a"), "a should be deleted")
}
