package changefeed

import (
	"errors"
	"testing"
	"time"

	. "github.com/go-playground/assert/v2"
	nats "github.com/nats-io/nats.go"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutumagi/scene/engine/coord"
	"github.com/tutumagi/scene/engine/grid"
	"github.com/tutumagi/scene/engine/model"
)

type recordPublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *recordPublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func eventTypes(t *testing.T, data []byte) []string {
	t.Helper()
	batch, err := Decode(data)
	require.NoError(t, err)
	var r []string
	for _, v := range batch.Fields["events"].GetListValue().GetValues() {
		r = append(r, v.GetStructValue().Fields["type"].GetStringValue())
	}
	return r
}

func TestFeedCollectsAndFlushes(t *testing.T) {
	pub := &recordPublisher{}
	feed := New(pub, "scene.changes")

	m := model.NewMap("m", nil)
	ground, err := m.CreateLayer("ground", grid.NewUnitSquareGrid())
	require.NoError(t, err)
	require.NoError(t, feed.Attach(m))
	assert.Error(t, feed.Attach(m))

	obj := model.NewObject("cart", "test", nil)
	cart, err := ground.CreateInstance(obj, coord.Cell{X: 1, Y: 2}, "cart")
	require.NoError(t, err)
	sky, err := m.CreateLayer("sky", grid.NewUnitSquareGrid())
	require.NoError(t, err)
	_, err = sky.CreateInstance(obj, coord.Cell{}, "bird")
	require.NoError(t, err)
	Equal(t, feed.Pending(), 3)

	require.NoError(t, feed.Flush())
	Equal(t, feed.Pending(), 0)
	Equal(t, pub.subjects, []string{"scene.changes"})
	Equal(t, eventTypes(t, pub.payloads[0]), []string{EventInstanceCreate, EventLayerCreate, EventInstanceCreate})

	batch, err := Decode(pub.payloads[0])
	require.NoError(t, err)
	Equal(t, batch.Fields["seq"].GetNumberValue(), 1.0)
	Equal(t, batch.Fields["map"].GetStringValue(), "m")
	first := batch.Fields["events"].GetListValue().GetValues()[0].GetStructValue()
	Equal(t, first.Fields["instance"].GetStringValue(), "cart")
	Equal(t, first.Fields["x"].GetNumberValue(), 1.0)
	Equal(t, first.Fields["y"].GetNumberValue(), 2.0)

	// 没有变化时不发布
	require.NoError(t, feed.Flush())
	Equal(t, len(pub.payloads), 1)

	cart.SetRotation(90)
	m.Tick(10)
	require.NoError(t, m.DeleteLayer(sky))
	require.NoError(t, feed.Flush())
	Equal(t, eventTypes(t, pub.payloads[1]), []string{EventInstanceChange, EventLayerDelete, EventInstanceDelete})

	feed.Detach()
	Equal(t, ground.ListenerCount(), 0)
	Equal(t, m.ListenerCount(), 0)
	_, err = ground.CreateInstance(obj, coord.Cell{}, "")
	require.NoError(t, err)
	Equal(t, feed.Pending(), 0)
}

func TestFeedPublishError(t *testing.T) {
	pub := &recordPublisher{err: errors.New("down")}
	feed := New(pub, "scene.changes")
	m := model.NewMap("m", nil)
	require.NoError(t, feed.Attach(m))
	_, err := m.CreateLayer("ground", grid.NewUnitSquareGrid())
	require.NoError(t, err)

	assert.ErrorIs(t, feed.Flush(), pub.err)
	Equal(t, feed.Pending(), 1)
	Equal(t, len(pub.payloads), 0)

	// 恢复后同一批事件重新发布，seq 不跳号
	pub.err = nil
	require.NoError(t, feed.Flush())
	Equal(t, feed.Pending(), 0)
	Equal(t, len(pub.payloads), 1)
	Equal(t, eventTypes(t, pub.payloads[0]), []string{EventLayerCreate})
	batch, err := Decode(pub.payloads[0])
	require.NoError(t, err)
	Equal(t, batch.Fields["seq"].GetNumberValue(), 1.0)
}

func TestFeedOverNats(t *testing.T) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	defer s.Shutdown()

	conn, err := Connect(s.ClientURL(), "scene-test")
	require.NoError(t, err)
	defer conn.Close()

	received := make(chan *nats.Msg, 1)
	sub, err := conn.ChanSubscribe("scene.changes", received)
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, conn.Flush())

	feed := New(conn, "scene.changes")
	m := model.NewMap("m", nil)
	require.NoError(t, feed.Attach(m))
	_, err = m.CreateLayer("ground", grid.NewUnitSquareGrid())
	require.NoError(t, err)
	require.NoError(t, feed.Flush())

	select {
	case msg := <-received:
		Equal(t, eventTypes(t, msg.Data), []string{EventLayerCreate})
	case <-time.After(2 * time.Second):
		t.Fatal("no changefeed message received")
	}
}
