// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package paging maintains the state of a paged employee listing:
// current page, page size, filters, and the loaded items. The
// controller is deliberately transport-agnostic; callers supply a
// LoadFunc and the controller decides which page to ask for and which
// responses are still worth applying.
//
// Loads can be driven two ways. Synchronous callers (the CLI) use
// LoadPage and Reload, which fetch and apply in one call. Asynchronous
// callers (the dashboard TUI) use Begin to stamp a request with a
// sequence number, fetch on their own goroutine, and hand the result
// back to Apply; a response stamped with anything but the newest
// sequence is rejected with ErrStale so a slow page two can never
// overwrite a fast page three.
package paging

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffdeck/staffdeck/lib/ems"
)

// ErrStale reports a page response that was superseded by a newer
// request before it arrived. The state it would have applied is
// discarded; the controller is unchanged.
var ErrStale = errors.New("paging: response superseded by a newer request")

// LoadFunc fetches one page of employees. It is typically
// (*ems.Client).ListEmployees wrapped to fix the client.
type LoadFunc func(ctx context.Context, pageNumber, pageSize int, filters ems.ListFilters) (*ems.Page, error)

// Controller tracks a paged listing. It is not safe for concurrent
// use; the dashboard drives it from the single bubbletea update loop
// and the CLI from one goroutine.
type Controller struct {
	load LoadFunc

	pageNumber int
	pageSize   int
	totalCount int
	items      []ems.EmployeeRecord
	filters    ems.ListFilters

	seq     uint64
	applied uint64
}

// NewController returns a controller positioned on page one. pageSize
// must be at least one.
func NewController(load LoadFunc, pageSize int) (*Controller, error) {
	if load == nil {
		return nil, errors.New("paging: load function is required")
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("paging: page size %d is not positive", pageSize)
	}
	return &Controller{load: load, pageNumber: 1, pageSize: pageSize}, nil
}

// PageNumber reports the page the controller currently shows. Before
// any load completes this is the page it intends to show.
func (controller *Controller) PageNumber() int { return controller.pageNumber }

// PageSize reports the configured page size.
func (controller *Controller) PageSize() int { return controller.pageSize }

// TotalCount reports the backend's record count for the active
// filters, as of the last applied load.
func (controller *Controller) TotalCount() int { return controller.totalCount }

// Items returns the currently loaded records. The slice is owned by
// the controller; callers must not modify it.
func (controller *Controller) Items() []ems.EmployeeRecord { return controller.items }

// Filters returns the active filter set.
func (controller *Controller) Filters() ems.ListFilters { return controller.filters }

// TotalPages derives the page count from the total and the page size,
// rounding up. An empty result set still has one (empty) page so the
// position indicator never reads "page 1 of 0".
func (controller *Controller) TotalPages() int {
	if controller.totalCount <= 0 {
		return 1
	}
	return (controller.totalCount + controller.pageSize - 1) / controller.pageSize
}

// SetFilters replaces the filter set and resets to page one. It does
// not load; the caller follows with LoadPage or Begin so that filter
// changes and the resulting fetch stay one decision.
func (controller *Controller) SetFilters(filters ems.ListFilters) {
	controller.filters = filters
	controller.pageNumber = 1
}

// Begin stamps an asynchronous load of the given page and returns the
// sequence number the eventual Apply must carry. The target page is
// clamped to at least one; clamping to the last page is impossible
// here because the total may be about to change.
func (controller *Controller) Begin(pageNumber int) (seq uint64, page int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	controller.seq++
	return controller.seq, pageNumber
}

// Apply installs a completed load. If seq is not the newest sequence
// handed out by Begin, the response is stale and dropped with
// ErrStale. A failed load (page == nil is treated as failure) leaves
// all listing state untouched so the previous page stays visible.
func (controller *Controller) Apply(seq uint64, page *ems.Page) error {
	if seq != controller.seq {
		return ErrStale
	}
	if seq == controller.applied {
		return ErrStale
	}
	controller.applied = seq
	if page == nil {
		return errors.New("paging: nil page")
	}
	controller.pageNumber = page.PageNumber
	controller.totalCount = page.TotalCount
	controller.items = page.Items
	return nil
}

// LoadPage synchronously fetches and applies the given page. On error
// the controller state is unchanged.
func (controller *Controller) LoadPage(ctx context.Context, pageNumber int) error {
	seq, target := controller.Begin(pageNumber)
	page, err := controller.load(ctx, target, controller.pageSize, controller.filters)
	if err != nil {
		return err
	}
	return controller.Apply(seq, page)
}

// Reload refetches the current page with the current filters. Used
// after a mutation so the listing reflects the backend's truth rather
// than a locally patched row.
func (controller *Controller) Reload(ctx context.Context) error {
	return controller.LoadPage(ctx, controller.pageNumber)
}

// Next and Prev move one page in either direction. Next is clamped to
// the last known page and Prev to page one; at a boundary they report
// false without loading.
func (controller *Controller) Next(ctx context.Context) (bool, error) {
	if controller.pageNumber >= controller.TotalPages() {
		return false, nil
	}
	if err := controller.LoadPage(ctx, controller.pageNumber+1); err != nil {
		return false, err
	}
	return true, nil
}

func (controller *Controller) Prev(ctx context.Context) (bool, error) {
	if controller.pageNumber <= 1 {
		return false, nil
	}
	if err := controller.LoadPage(ctx, controller.pageNumber-1); err != nil {
		return false, err
	}
	return true, nil
}
