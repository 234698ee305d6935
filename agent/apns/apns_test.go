package apns

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"testing"

	"github.com/findy-network/findy-mediator/agent/storage/wrapper"
	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
	"github.com/sideshow/apns2"
)

const (
	authKey = "6ri8Tc8M9bX8A4jCvt4eWGJ8ZHj2BBWWp6v1HJ6VGGeM"
	topic   = "fi.findy.mediator.test"
)

type fakePusher struct {
	sent   []*apns2.Notification
	status int
	err    error
}

func (f *fakePusher) PushWithContext(_ apns2.Context, n *apns2.Notification) (*apns2.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, n)
	return &apns2.Response{StatusCode: f.status, ApnsID: "id", Reason: "reason"}, nil
}

func TestMain(m *testing.M) {
	try.To(flag.Set("logtostderr", "true"))
	try.To(flag.Set("stderrthreshold", "WARNING"))
	flag.Parse()
	os.Exit(m.Run())
}

func ptr(s string) *string { return &s }

func TestNotify(t *testing.T) {
	tests := []struct {
		name     string
		token    *string
		platform *string
		status   int
		pushErr  error
		wantErr  error
		wantSent int
	}{
		{"ios", ptr("tok"), ptr("ios"), http.StatusOK, nil, nil, 1},
		{"android", ptr("tok"), ptr("android"), http.StatusOK, nil, ErrUnsupported, 0},
		{"no device", nil, nil, http.StatusOK, nil, ErrNoDevice, 0},
		{"rejected", ptr("tok"), ptr("ios"), http.StatusBadRequest, nil, ErrRejected, 1},
		{"push error", ptr("tok"), ptr("ios"), 0, errors.New("conn reset"), nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PushTester(t)
			defer assert.PopTester()
			ctx := context.Background()

			s := wrapper.NewStorage(mem.NewProvider())
			assert.NoError(s.Open())
			defer s.Close()
			assert.NoError(s.CreateAccount(ctx, authKey, "sign", nil))
			if tt.token != nil {
				assert.NoError(s.SetDeviceInfo(ctx, authKey, tt.token, tt.platform))
			}

			p := &fakePusher{status: tt.status, err: tt.pushErr}
			err := NewWithPusher(p, topic, s).Notify(ctx, authKey)
			switch {
			case tt.pushErr != nil:
				assert.Error(err)
				assert.That(errors.Is(err, tt.pushErr))
			case tt.wantErr != nil:
				assert.Error(err)
				assert.That(errors.Is(err, tt.wantErr))
			default:
				assert.NoError(err)
			}
			assert.SLen(p.sent, tt.wantSent)
			if tt.wantSent > 0 {
				n := p.sent[0]
				assert.Equal("tok", n.DeviceToken)
				assert.Equal(topic, n.Topic)
				assert.Equal(apns2.PushTypeBackground, n.PushType)
				assert.Equal(payload, string(n.Payload.([]byte)))
			}
		})
	}
}

func TestNew_NoCert(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	_, err := New(nil)
	assert.Error(err)
}
