package service

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoundTripper struct {
	body string
}

func (s *stubRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBufferString(s.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

func withStubWechat(body string) func() {
	old := wechatHTTPClient.Transport
	wechatHTTPClient.Transport = &stubRoundTripper{body: body}
	return func() { wechatHTTPClient.Transport = old }
}

func TestCode2Session(t *testing.T) {
	defer withStubWechat(`{"openid":"oABC123","session_key":"sk","unionid":"u1"}`)()

	session, err := Code2Session("wx-app", "secret", "code-1")
	require.NoError(t, err)
	assert.Equal(t, "oABC123", session.OpenID)
	assert.Equal(t, "sk", session.SessionKey)
	assert.Equal(t, "u1", session.UnionID)
}

func TestCode2Session_APIError(t *testing.T) {
	defer withStubWechat(`{"errcode":40029,"errmsg":"invalid code"}`)()

	_, err := Code2Session("wx-app", "secret", "bad-code")
	require.Error(t, err)
	var apiErr *WechatAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 40029, apiErr.ErrCode)
}

func TestCode2Session_MissingOpenID(t *testing.T) {
	defer withStubWechat(`{}`)()

	_, err := Code2Session("wx-app", "secret", "code-1")
	require.Error(t, err)
}
