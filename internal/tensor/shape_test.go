package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		n     int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
		{Shape{2, 0, 4}, 0},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.n {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.n)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate(%v): unexpected error %v", Shape{2, 3}, err)
	}
	if err := (Shape{2, 0}).Validate(); err != nil {
		t.Errorf("Validate(%v): zero dims are legal, got %v", Shape{2, 0}, err)
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("Validate: expected error for negative dimension")
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("Equal: {2,3} should equal {2,3}")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("Equal: {2,3} should not equal {3,2}")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 1}) {
		t.Error("Equal: shapes of different rank should not be equal")
	}
}

func TestShapeClone(t *testing.T) {
	original := Shape{2, 3}
	clone := original.Clone()
	clone[0] = 99

	if original[0] != 2 {
		t.Error("Clone: mutating the clone changed the original")
	}
}

func TestComputeStrides(t *testing.T) {
	tests := []struct {
		shape   Shape
		strides []int
	}{
		{Shape{}, []int{}},
		{Shape{5}, []int{1}},
		{Shape{2, 3}, []int{3, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}

	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.strides) {
			t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.strides)
			continue
		}
		for i := range got {
			if got[i] != tt.strides[i] {
				t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.strides)
				break
			}
		}
	}
}

func TestRowShape(t *testing.T) {
	tests := []struct {
		shape Shape
		row   Shape
	}{
		{Shape{}, Shape{1, 1}},
		{Shape{4}, Shape{1, 4}},
		{Shape{2, 3}, Shape{2, 3}},
		{Shape{2, 3, 4}, Shape{2, 3, 4}},
	}

	for _, tt := range tests {
		if got := tt.shape.RowShape(); !got.Equal(tt.row) {
			t.Errorf("%v.RowShape() = %v, want %v", tt.shape, got, tt.row)
		}
	}
}
