package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycl-tw/attention-monitor/internal/attention"
)

const twseCSV = `"114年01月 注意有價證券資訊"

編號,證券代號,證券名稱,累計次數,注意交易資訊,日期
1,="2330",台積電,3,第一款 累積收盤價漲幅達28.5% 成交量放大3倍 另為5.5倍,114/01/21
2,="2330",台積電,2,第二款,114/01/20
3,="6505",台塑化,1,第十款,114/01/21
4,="1234",壞日期,1,第一款,114/13/45

說明: 本表僅供參考
`

const tpexCSV = `上櫃注意資訊

公告日期,證券代號,證券名稱,注意交易資訊
114.01.21,="6488",環球晶,第二款 漲幅達12%
114.01.20,="4743",合一,第一款
`

func TestParseCSVTWSE(t *testing.T) {
	result, err := ParseCSV(twseCSV, attention.MarketTSE)
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Equal(t, 1, result.Skipped) // the 114/13/45 row

	first := result.Rows[0]
	assert.Equal(t, attention.MarketTSE, first.Market)
	assert.Equal(t, "2330", first.Code)
	assert.Equal(t, "台積電", first.Name)
	assert.True(t, first.Date.Equal(time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC)))
	assert.Contains(t, first.Remark, "第一款")
}

func TestParseCSVTPEXDateHeader(t *testing.T) {
	// TPEX names the date column 公告日期 and places it first.
	result, err := ParseCSV(tpexCSV, attention.MarketOTC)
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "6488", result.Rows[0].Code)
	assert.True(t, result.Rows[0].Date.Equal(time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC)))
}

func TestParseCSVNoHeader(t *testing.T) {
	_, err := ParseCSV("a,b,c\n1,2,3\n", attention.MarketTSE)
	assert.ErrorIs(t, err, ErrStructure)
}

func TestParseCSVHeaderButNoRows(t *testing.T) {
	text := "證券代號,證券名稱,注意交易資訊,日期\n"
	_, err := ParseCSV(text, attention.MarketTSE)
	assert.ErrorIs(t, err, ErrStructure)
}

func TestParseCSVMissingDateColumn(t *testing.T) {
	text := "證券代號,證券名稱,注意交易資訊\n2330,台積電,第一款\n"
	_, err := ParseCSV(text, attention.MarketTSE)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructure))
}
