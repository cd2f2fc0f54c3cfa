package numdiff

import (
	"math"
	"reflect"
	"testing"
)

func objV2(x, y []float64) {
	y[0] = x[0] * math.Sin(x[1])
	y[1] = x[1] * math.Cos(x[0])
	y[2] = math.Pow(x[0], 3) * math.Pow(x[1], -0.5)
}

func jacV2(x []float64) []float64 {
	return []float64{
		math.Sin(x[1]), x[0] * math.Cos(x[1]),
		-x[1] * math.Sin(x[0]), math.Cos(x[0]),
		3 * math.Pow(x[0], 2) * math.Pow(x[1], -0.5), -0.5 * math.Pow(x[0], 3) * math.Pow(x[1], -1.5),
	}
}

func objZero(x, y []float64) {
	y[0] = x[0] * x[1]
	y[1] = math.Cos(x[0] * x[1])
}

func jacZero(x []float64) []float64 {
	return []float64{
		x[1], x[0],
		-x[1] * math.Sin(x[0]*x[1]), -x[0] * math.Sin(x[0]*x[1]),
	}
}

// Case source: https://github.com/scipy/scipy/blob/main/scipy/optimize/tests/test__numdiff.py
// (test_absolute_step_sign), trimmed to the central-difference path.
func TestComputeAbsStp(t *testing.T) {
	x0 := []float64{1e-5, 0, 1, 1e5}
	dummy := make([]float64, 4)

	expected := []float64{
		cubeEps,
		cubeEps,
		cubeEps,
		cubeEps * math.Abs(x0[3]),
	}

	noop := func(x, y []float64) {}
	g := GradSpec{N: 4, M: 1, Object: noop}
	if err := g.check(x0, dummy); err != nil {
		t.Fatal(err)
	}
	g.absoluteStep(x0)
	if !relativeEqual(g.absStep, expected, 1e-12) {
		t.Fatal("unexpected abs step")
	}

	// user-specified relative step
	for _, relStep := range []float64{0.1, 1, 10, 100} {
		want := []float64{
			relStep * math.Abs(x0[0]),
			cubeEps,
			relStep * math.Abs(x0[2]),
			relStep * math.Abs(x0[3]),
		}

		g := GradSpec{N: 4, M: 1, Object: noop, RelStep: relStep}
		if err := g.check(x0, dummy); err != nil {
			t.Fatal(err)
		}
		g.absoluteStep(x0)
		if !relativeEqual(g.absStep, want, 1e-12) {
			t.Fatal("unexpected abs step")
		}
	}
}

// Case source: https://github.com/scipy/scipy/blob/main/scipy/optimize/tests/test__numdiff.py
// (TestApproxDerivativesDense.test_scalar_scalar)
func TestScalar(t *testing.T) {
	x0 := []float64{1.0}
	obj := func(x, y []float64) {
		y[0] = math.Sinh(x[0])
	}
	want := []float64{math.Cosh(x0[0])}

	got := []float64{0}
	g := GradSpec{N: 1, M: 1, Object: obj}
	if err := g.Diff(x0, got); err != nil {
		t.Fatal("central diff failed", err)
	}
	if !relativeEqual(got, want, 1e-9) {
		t.Fatal("unexpected scalar gradient")
	}

	got = []float64{0}
	g = GradSpec{N: 1, M: 1, Object: obj, AbsStep: 1.49e-8}
	if err := g.Diff(x0, got); err != nil {
		t.Fatal("central diff failed", err)
	}
	if !relativeEqual(got, want, 1e-6) {
		t.Fatal("unexpected scalar gradient")
	}
}

// Case source: https://github.com/scipy/scipy/blob/main/scipy/optimize/tests/test__numdiff.py
// (TestApproxDerivativesDense.test_scalar_vector)
func TestScalarVec(t *testing.T) {
	x0 := []float64{0.5}
	obj := func(x, y []float64) {
		y[0] = x[0] * x[0]
		y[1] = math.Tan(x[0])
		y[2] = math.Exp(x[0])
	}
	want := []float64{
		2 * x0[0],
		1 / (math.Cos(x0[0]) * math.Cos(x0[0])),
		math.Exp(x0[0]),
	}

	got := make([]float64, 3)
	g := GradSpec{N: 1, M: 3, Object: obj}
	if err := g.Diff(x0, got); err != nil {
		t.Fatal("central diff failed", err)
	}
	if !relativeEqual(got, want, 1e-9) {
		t.Fatal("unexpected scalar-vector gradient")
	}
}

// Case source: https://github.com/scipy/scipy/blob/main/scipy/optimize/tests/test__numdiff.py
// (TestApproxDerivativesDense.test_vector_scalar)
func TestVecScalar(t *testing.T) {
	x0 := []float64{100.0, -0.5}
	obj := func(x, y []float64) {
		y[0] = math.Sin(x[0]*x[1]) * math.Log(x[0])
	}
	want := []float64{
		x0[1]*math.Cos(x0[0]*x0[1])*math.Log(x0[0]) + math.Sin(x0[0]*x0[1])/x0[0],
		x0[0] * math.Cos(x0[0]*x0[1]) * math.Log(x0[0]),
	}

	got := []float64{0, 0}
	g := GradSpec{N: 2, M: 1, Object: obj}
	if err := g.Diff(x0, got); err != nil {
		t.Fatal("central diff failed", err)
	}
	if !relativeEqual(got, want, 1e-7) {
		t.Fatal("unexpected vector-scalar gradient")
	}
}

// Case source: https://github.com/scipy/scipy/blob/main/scipy/optimize/tests/test__numdiff.py
// (TestApproxDerivativesDense.test_vector_vector)
func TestVector(t *testing.T) {
	x0 := []float64{-100.0, 0.2}
	want := jacV2(x0)

	got := make([]float64, 6)
	g := GradSpec{N: 2, M: 3, Object: objV2}
	if err := g.Diff(x0, got); err != nil {
		t.Fatal("central diff failed", err)
	}
	if !relativeEqual(got, want, 1e-6) {
		t.Fatal("unexpected vector gradient")
	}

	got = make([]float64, 6)
	g = GradSpec{N: 2, M: 3, Object: objV2, RelStep: 1e-4}
	if err := g.Diff(x0, got); err != nil {
		t.Fatal("central diff failed", err)
	}
	if !relativeEqual(got, want, 1e-4) {
		t.Fatal("unexpected vector gradient")
	}
}

// Case source: https://github.com/scipy/scipy/blob/main/scipy/optimize/tests/test__numdiff.py
// (TestApproxDerivativesDense.test_check_derivative)
func TestAccuracy(t *testing.T) {
	checkDerivative := func(
		n, m int, x0 []float64,
		fun func(x, y []float64),
		jac func(x []float64) []float64,
	) float64 {
		jacTest := jac(x0)
		jacDiff := make([]float64, n*m)

		g := GradSpec{N: n, M: m, Object: fun}
		if err := g.Diff(x0, jacDiff); err != nil {
			panic(err)
		}

		maxErr := 0.0
		for i := 0; i < n*m; i++ {
			absErr := math.Abs(jacTest[i] - jacDiff[i])
			absErr /= math.Max(1, math.Abs(jacDiff[i]))
			if absErr > maxErr {
				maxErr = absErr
			}
		}
		return maxErr
	}

	x0 := []float64{-10.0, 10}
	if acc := checkDerivative(2, 3, x0, objV2, jacV2); acc > 1e-9 {
		t.Fatal("approx accuracy not enough")
	}

	x0 = []float64{0, 0}
	if acc := checkDerivative(2, 2, x0, objZero, jacZero); acc > 0 {
		t.Fatal("approx accuracy not enough")
	}
}

func relativeEqual[T float64 | []float64](a, b T, tol float64) bool {
	equalWithinRel := func(a, b float64) bool {
		if a == b {
			return true
		}
		delta := math.Abs(a - b)
		return delta/math.Max(math.Abs(a), math.Abs(b)) <= tol
	}
	switch reflect.TypeOf(a).Kind() {
	case reflect.Float64:
		return equalWithinRel(any(a).(float64), any(b).(float64))
	case reflect.Slice:
		a, b := any(a).([]float64), any(b).([]float64)
		if len(a) != len(b) {
			return false
		}
		for i, a := range a {
			if !equalWithinRel(a, b[i]) {
				return false
			}
		}
		return true
	default:
		panic("unknown type")
	}
}
