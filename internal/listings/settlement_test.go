package listings

import (
	"testing"

	"loop-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func tradingListingsWithPrices(prices ...int64) []*models.Listing {
	listings := make([]*models.Listing, 0, len(prices))
	for _, p := range prices {
		listings = append(listings, &models.Listing{Price: p})
	}
	return listings
}

func TestDistributeCredits(t *testing.T) {
	tests := []struct {
		name       string
		prices     []int64
		totalPrice int64
		want       []int64
	}{
		{
			name:       "tek ilan tamamını alır",
			prices:     []int64{80},
			totalPrice: -30,
			want:       []int64{30},
		},
		{
			name:       "eşit fiyatlar eşit bölünür",
			prices:     []int64{40, 40},
			totalPrice: -30,
			want:       []int64{15, 15},
		},
		{
			name:       "küsurat son ilana yazılır",
			prices:     []int64{10, 20, 25},
			totalPrice: -30,
			// sum=55: floor(10*30/55)=5, floor(20*30/55)=10, son: 30-15=15
			want: []int64{5, 10, 15},
		},
		{
			name:       "bölünemeyen tutar",
			prices:     []int64{33, 33, 34},
			totalPrice: -100,
			// floor(33), floor(33), kalan 34
			want: []int64{33, 33, 34},
		},
		{
			name:       "sıfır fiyatlı ara ilan pay almaz",
			prices:     []int64{0, 50},
			totalPrice: -10,
			want:       []int64{0, 10},
		},
		{
			name:       "uç fiyatlarda ara çarpım taşmaz",
			prices:     []int64{4_000_000_000_000_000_000, 4_000_000_000_000_000_000},
			totalPrice: -5_000_000_000_000_000_000,
			// 4e18*5e18 int64'e sığmaz; 128 bit ara çarpımla pay 2.5e18
			want: []int64{2_500_000_000_000_000_000, 2_500_000_000_000_000_000},
		},
		{
			name:       "pozitif farkta dağıtım yok",
			prices:     []int64{40},
			totalPrice: 60,
			want:       nil,
		},
		{
			name:       "sıfır farkta dağıtım yok",
			prices:     []int64{50, 50},
			totalPrice: 0,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := distributeCredits(tradingListingsWithPrices(tt.prices...), tt.totalPrice)
			require.Equal(t, tt.want, got)
		})
	}
}

// Tam bölüşüm kuralı: paylar her n ve fiyat bileşimi için tam olarak
// -totalPrice etmeli; tam sayı bölme kayıp yaratamaz.
func TestDistributeCreditsExactPartition(t *testing.T) {
	cases := []struct {
		prices     []int64
		totalPrice int64
	}{
		{[]int64{1}, -1},
		{[]int64{7, 11, 13}, -17},
		{[]int64{3, 3, 3, 3, 3}, -7},
		{[]int64{100, 1}, -99},
		{[]int64{999, 998, 997, 5}, -1234},
		{[]int64{60, 40}, -100},
	}

	for _, tc := range cases {
		got := distributeCredits(tradingListingsWithPrices(tc.prices...), tc.totalPrice)
		require.Len(t, got, len(tc.prices))

		var sum int64
		for _, a := range got {
			sum += a
		}
		require.Equal(t, -tc.totalPrice, sum, "prices=%v totalPrice=%d paylar=%v", tc.prices, tc.totalPrice, got)
	}
}
