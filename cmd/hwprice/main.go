// hwprice is a small driver around the Hull-White model: it builds a curve
// from the environment (or a pillar file), prices a discount bond option
// analytically and on a trinomial tree, and sweeps a strike ladder through
// the batch pricer.
//
// Configuration comes from the environment, optionally seeded from a .env
// file:
//
//	HW_A, HW_SIGMA            model constants (default 0.1, 0.01)
//	HW_FLAT_RATE              flat curve rate (default 0.05)
//	HW_CURVE_FILE             JSON pillar file, overrides HW_FLAT_RATE
//	HW_MATURITY               option maturity in years (default 1)
//	HW_BOND_MATURITY          bond maturity in years (default 2)
//	HW_STRIKE                 strike, default forward bond price
//	HW_TREE_STEPS             tree steps (default 100)
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/irquant/book"
	"github.com/bcdannyboy/irquant/lattice"
	"github.com/bcdannyboy/irquant/models"
	"github.com/bcdannyboy/irquant/termstructure"
)

type pillarFile struct {
	Times     []float64 `json:"times"`
	Discounts []float64 `json:"discounts"`
}

func envFloat(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("invalid %s=%q: %v", key, s, err)
	}
	return v
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid %s=%q: %v", key, s, err)
	}
	return v
}

func loadCurve() termstructure.TermStructure {
	path := os.Getenv("HW_CURVE_FILE")
	if path == "" {
		return termstructure.NewFlatForward(envFloat("HW_FLAT_RATE", 0.05))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read curve file: %v", err)
	}
	var pf pillarFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		log.Fatalf("parse curve file: %v", err)
	}
	curve, err := termstructure.NewZeroCurve(pf.Times, pf.Discounts)
	if err != nil {
		log.Fatalf("build curve: %v", err)
	}
	return curve
}

func main() {
	// A missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	a := envFloat("HW_A", 0.1)
	sigma := envFloat("HW_SIGMA", 0.01)
	maturity := envFloat("HW_MATURITY", 1)
	bondMaturity := envFloat("HW_BOND_MATURITY", 2)
	steps := envInt("HW_TREE_STEPS", 100)

	handle := termstructure.NewHandle(loadCurve())
	model, err := models.NewHullWhite(handle, a, sigma)
	if err != nil {
		log.Fatalf("build model: %v", err)
	}

	fmt.Printf("Hull-White a=%.4f sigma=%.4f\n", a, sigma)
	for _, t := range []float64{0, 0.5, maturity, bondMaturity} {
		phi, err := model.FittingParameter().Value(t)
		if err != nil {
			log.Fatalf("phi(%.2f): %v", t, err)
		}
		fmt.Printf("  phi(%.2f) = %.6f\n", t, phi)
	}

	dfMat, err := handle.Discount(maturity)
	if err != nil {
		log.Fatalf("discount(%.2f): %v", maturity, err)
	}
	dfBond, err := handle.Discount(bondMaturity)
	if err != nil {
		log.Fatalf("discount(%.2f): %v", bondMaturity, err)
	}
	strike := envFloat("HW_STRIKE", dfBond/dfMat)

	price, err := model.DiscountBondOption(models.Call, strike, maturity, bondMaturity)
	if err != nil {
		log.Fatalf("price option: %v", err)
	}
	fmt.Printf("call on %.2fy bond, exercise %.2fy, strike %.6f: %.6f\n",
		bondMaturity, maturity, strike, price)

	grid, err := lattice.NewUniformTimeGrid(maturity, steps)
	if err != nil {
		log.Fatalf("build grid: %v", err)
	}
	tree, err := model.Tree(grid)
	if err != nil {
		log.Fatalf("build tree: %v", err)
	}
	treeDF, err := tree.DiscountBondPrice()
	if err != nil {
		log.Fatalf("tree rollback: %v", err)
	}
	fmt.Printf("tree df(%.2f) = %.6f (curve %.6f, %d steps)\n", maturity, treeDF, dfMat, steps)

	// Strike ladder through the batch pricer.
	var reqs []book.Request
	for i := -10; i <= 10; i++ {
		reqs = append(reqs, book.Request{
			Type:         models.Call,
			Strike:       strike * (1 + float64(i)*0.01),
			Maturity:     maturity,
			BondMaturity: bondMaturity,
		})
	}
	results := book.PriceAll(model, reqs, book.WithProgress())
	for _, res := range results {
		if res.Err != nil {
			log.Fatalf("ladder strike %.6f: %v", res.Request.Strike, res.Err)
		}
		fmt.Printf("  strike %.6f  call %.6f\n", res.Request.Strike, res.Price)
	}
}
