package catalog

func init() {
	Register("unit", func() Catalog { return Catalog{1} })
	Register("e6", func() Catalog { return eSeries(e6, 6) })
	Register("e12", func() Catalog { return eSeries(e12, 6) })
	Register("e24", func() Catalog { return eSeries(e24, 6) })
	Register("lab", func() Catalog { return labStock.Clone() })
}

// IEC 60063 mantissas, in tenths of an ohm.
var (
	e6  = []int{10, 15, 22, 33, 47, 68}
	e12 = []int{10, 12, 15, 18, 22, 27, 33, 39, 47, 56, 68, 82}
	e24 = []int{
		10, 11, 12, 13, 15, 16, 18, 20, 22, 24, 27, 30,
		33, 36, 39, 43, 47, 51, 56, 62, 68, 75, 82, 91,
	}
)

// eSeries expands mantissas over decades 1Ω .. 10^(decades-1)Ω, ascending.
// Values are built from integers so 4.7k is exactly 4700, not 4700.000000000001.
func eSeries(mantissas []int, decades int) Catalog {
	out := make(Catalog, 0, len(mantissas)*decades)
	scale := 1
	for d := 0; d < decades; d++ {
		for _, m := range mantissas {
			if d == 0 {
				out = append(out, float64(m)/10)
			} else {
				out = append(out, float64(m*scale))
			}
		}
		if d > 0 {
			scale *= 10
		}
	}
	return out
}

// labStock is a mixed bench drawer of common values from 1Ω to 10MΩ.
var labStock = Catalog{
	1, 1.5, 2.7, 4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5,
	8.2, 9.1, 10, 11, 12, 13, 15, 16, 18, 20,
	22, 24, 27, 30, 33, 36, 39, 43, 47, 51,
	56, 62, 68, 75, 82, 91, 100, 110, 120, 130,
	150, 160, 180, 200, 220, 240, 270, 300, 330, 360,
	390, 430, 470, 510, 560, 620, 680, 750, 820, 910,
	1000, 1100, 1200, 1300, 1500, 1600, 1800, 2000, 2200, 2400,
	2700, 3000, 3300, 3600, 3900, 4500, 4700, 5100, 5600, 6200,
	7500, 8200, 9100, 10000, 11000, 12000, 13000, 15000, 16000, 18000,
	20000, 22000, 24000, 27000, 30000, 33000, 36000, 39000, 43000, 47000,
	51000, 56000, 62000, 68000, 75000, 82000, 91000, 100000, 110000, 120000,
	130000, 150000, 160000, 180000, 200000, 220000, 240000, 270000, 300000, 330000,
	360000, 390000, 430000, 470000, 510000, 560000, 620000, 680000, 750000, 820000, 910000,
	1000000, 1100000, 1200000, 1300000, 1500000, 1600000, 1800000, 2000000, 2100000, 2200000,
	2400000, 2700000, 3000000, 3300000, 3600000, 3900000, 4700000, 5600000, 6800000, 8200000,
	10000000,
}
