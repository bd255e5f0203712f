package page

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Request
		want Request
	}{
		{name: "unchanged", in: Request{Index: 2, Size: 10}, want: Request{Index: 2, Size: 10}},
		{name: "default size", in: Request{Index: 0, Size: 0}, want: Request{Index: 0, Size: 20}},
		{name: "negative index", in: Request{Index: -3, Size: 5}, want: Request{Index: 0, Size: 5}},
		{name: "capped size", in: Request{Index: 1, Size: 500}, want: Request{Index: 1, Size: 100}},
		{name: "overflowing index", in: Request{Index: math.MaxInt / 10, Size: 20}, want: Request{Index: (math.MaxInt - 20) / 20, Size: 20}},
		{name: "largest index", in: Request{Index: math.MaxInt, Size: 0}, want: Request{Index: (math.MaxInt - 20) / 20, Size: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(20, 100))
		})
	}
}

func TestWindow(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	assert.Equal(t, []int{0, 1, 2}, Window(items, Request{Index: 0, Size: 3}))
	assert.Equal(t, []int{3, 4, 5}, Window(items, Request{Index: 1, Size: 3}))
	assert.Equal(t, []int{6}, Window(items, Request{Index: 2, Size: 3}))
	assert.Equal(t, []int{}, Window(items, Request{Index: 3, Size: 3}))
	assert.Equal(t, []int{}, Window(items, Request{Index: 0, Size: 0}))
}

func TestWindow_OutOfRange(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name string
		req  Request
	}{
		{name: "negative index", req: Request{Index: -1, Size: 20}},
		{name: "negative size", req: Request{Index: 0, Size: -5}},
		{name: "overflowing offset", req: Request{Index: math.MaxInt / 10, Size: 20}},
		{name: "largest index", req: Request{Index: math.MaxInt, Size: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.req.InRange())
			assert.Equal(t, []int{}, Window(items, tt.req))
		})
	}
}

func TestNormalize_OffsetNeverOverflows(t *testing.T) {
	for _, size := range []int{1, 7, 20, 100} {
		req := Request{Index: math.MaxInt, Size: size}.Normalize(20, 100)

		assert.True(t, req.InRange())
		assert.GreaterOrEqual(t, req.Offset(), 0)
		assert.Equal(t, []int{}, Window([]int{1, 2, 3}, req))
	}
}

func TestNewAndMap(t *testing.T) {
	p := New([]int{1, 2}, 12, Request{Index: 3, Size: 2})
	mapped := Map(p, strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, mapped.Items)
	assert.Equal(t, int64(12), mapped.TotalCount)
	assert.Equal(t, 3, mapped.PageIndex)
	assert.Equal(t, 2, mapped.PageSize)

	empty := New[int](nil, 0, Request{Size: 5})
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}
