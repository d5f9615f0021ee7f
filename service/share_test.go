package service

import (
	"testing"
	"time"

	"eyewear/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupModels(t *testing.T) {
	out := DedupModels([]string{"S1", " S2 ", "S1", "", "S3"}, 50)
	assert.Equal(t, []string{"S1", "S2", "S3"}, out)

	// 上限裁剪
	var many []string
	for i := 0; i < 60; i++ {
		many = append(many, string(rune('A'+i%26))+string(rune('0'+i/26)))
	}
	assert.LessOrEqual(t, len(DedupModels(many, 50)), 50)

	// 保序
	out = DedupModels([]string{"C", "A", "B", "A"}, 50)
	assert.Equal(t, []string{"C", "A", "B"}, out)
}

func TestTruncateNote(t *testing.T) {
	assert.Equal(t, "短备注", TruncateNote(" 短备注 "))
	// 按字符截断而不是字节
	assert.Equal(t, "一二三四五六七八九十", TruncateNote("一二三四五六七八九十一二三"))
	assert.Equal(t, "", TruncateNote(""))
}

func TestApplyOpen_FirstOpener(t *testing.T) {
	rec := &models.SalesShare{CustomerOpenIDs: models.StringList{}}
	now := time.Now()

	changed := applyOpen(rec, "customer-x", now)
	require.True(t, changed)
	assert.Equal(t, 1, rec.OpenCount)
	assert.True(t, rec.IsOpened)
	require.NotNil(t, rec.FirstOpenTime)
	assert.Equal(t, now, *rec.FirstOpenTime)
	assert.Equal(t, now, *rec.LastOpenTime)
}

func TestApplyOpen_RepeatOpenerIsNoop(t *testing.T) {
	rec := &models.SalesShare{CustomerOpenIDs: models.StringList{}}
	t0 := time.Now()
	require.True(t, applyOpen(rec, "customer-x", t0))

	t1 := t0.Add(time.Minute)
	changed := applyOpen(rec, "customer-x", t1)
	assert.False(t, changed)
	assert.Equal(t, 1, rec.OpenCount)
	assert.Equal(t, t0, *rec.FirstOpenTime)
	assert.Equal(t, t0, *rec.LastOpenTime) // 重复打开不刷新时间
}

func TestApplyOpen_SecondOpener(t *testing.T) {
	rec := &models.SalesShare{CustomerOpenIDs: models.StringList{}}
	t0 := time.Now()
	require.True(t, applyOpen(rec, "customer-x", t0))

	t1 := t0.Add(time.Minute)
	changed := applyOpen(rec, "customer-y", t1)
	require.True(t, changed)
	assert.Equal(t, 2, rec.OpenCount)
	assert.Equal(t, t0, *rec.FirstOpenTime) // 首次时间不变
	assert.Equal(t, t1, *rec.LastOpenTime)  // 末次时间推进
	assert.Equal(t, models.StringList{"customer-x", "customer-y"}, rec.CustomerOpenIDs)
}

func TestStringListContains(t *testing.T) {
	l := models.StringList{"abc", "abcd"}
	assert.True(t, l.Contains("abc"))
	// 精确成员而非子串
	assert.False(t, l.Contains("ab"))
	assert.False(t, models.StringList{}.Contains("abc"))
}
