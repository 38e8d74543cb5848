package changefeed

import (
	"fmt"
	"time"

	nats "github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tutumagi/scene/engine/model"
	"github.com/tutumagi/scene/logger"
)

// 事件类型
const (
	EventLayerCreate    = "layer_create"
	EventLayerDelete    = "layer_delete"
	EventInstanceCreate = "instance_create"
	EventInstanceDelete = "instance_delete"
	EventInstanceChange = "instance_change"
)

// Publisher 发布消息，*nats.Conn 满足该接口
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Connect 连接 nats
func Connect(url string, name string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(500*time.Millisecond),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("changefeed disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("changefeed reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
}

// Feed 监听一个地图，把每一帧的变化攒起来，在 tick 结束后由驱动方调用 Flush 发布
//	回调中只记录快照，不做任何 IO
type Feed struct {
	pub     Publisher
	subject string

	m      *model.Map
	mapSub *model.Subscription
	layers map[*model.Layer]*model.Subscription

	seq     uint64
	pending []interface{}
}

// New ctor
func New(pub Publisher, subject string) *Feed {
	return &Feed{
		pub:     pub,
		subject: subject,
		layers:  make(map[*model.Layer]*model.Subscription),
	}
}

// Attach 开始监听地图以及地图上所有的层
func (f *Feed) Attach(m *model.Map) error {
	if f.m != nil {
		return fmt.Errorf("changefeed already attached to map %s", f.m.ID())
	}
	f.m = m
	f.mapSub = m.AddChangeListener(f)
	for _, layer := range m.Layers() {
		f.watch(layer)
	}
	return nil
}

// Detach 取消所有监听，未发布的变化会被丢弃
func (f *Feed) Detach() {
	for layer, sub := range f.layers {
		if err := sub.Cancel(); err != nil {
			logger.Debugf("Feed::Detach layer=%s err=%v", layer.ID(), err)
		}
	}
	f.layers = make(map[*model.Layer]*model.Subscription)
	if f.mapSub != nil {
		if err := f.mapSub.Cancel(); err != nil {
			logger.Debugf("Feed::Detach map err=%v", err)
		}
		f.mapSub = nil
	}
	f.m = nil
	f.pending = nil
}

// Pending 未发布的事件数
func (f *Feed) Pending() int {
	return len(f.pending)
}

// Flush 发布攒下的事件，没有事件时什么也不做
func (f *Feed) Flush() error {
	if len(f.pending) == 0 {
		return nil
	}
	mapID := ""
	if f.m != nil {
		mapID = f.m.ID()
	}
	// 发布成功后才推进 seq，失败时保留 pending 下次重发
	seq := f.seq + 1
	batch, err := structpb.NewStruct(map[string]interface{}{
		"seq":    float64(seq),
		"map":    mapID,
		"events": f.pending,
	})
	if err != nil {
		return fmt.Errorf("changefeed encode: %w", err)
	}
	data, err := proto.Marshal(batch)
	if err != nil {
		return fmt.Errorf("changefeed marshal: %w", err)
	}
	if err := f.pub.Publish(f.subject, data); err != nil {
		return fmt.Errorf("changefeed publish %s: %w", f.subject, err)
	}
	count := len(f.pending)
	f.pending = nil
	f.seq = seq
	logger.Debugf("Feed::Flush subject=%s seq=%d events=%d", f.subject, f.seq, count)
	return nil
}

// Decode 解析 Flush 发布的消息
func Decode(data []byte) (*structpb.Struct, error) {
	batch := &structpb.Struct{}
	if err := proto.Unmarshal(data, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (f *Feed) watch(layer *model.Layer) {
	if _, ok := f.layers[layer]; ok {
		return
	}
	f.layers[layer] = layer.AddChangeListener(f)
}

func (f *Feed) record(kind string, layer *model.Layer, inst *model.Instance) {
	event := map[string]interface{}{
		"type":  kind,
		"layer": layer.ID(),
	}
	if inst != nil {
		c := inst.Cell()
		event["instance"] = inst.ID()
		event["object"] = inst.Object().ID()
		event["x"] = float64(c.X)
		event["y"] = float64(c.Y)
		event["z"] = float64(c.Z)
		event["rotation"] = float64(inst.Rotation())
		event["action"] = inst.Action()
	}
	f.pending = append(f.pending, event)
}

/****************** model.MapListener *****************/

// OnMapChanged imp. 实例的变化已经在层的回调中记录
func (f *Feed) OnMapChanged(*model.Map, []*model.Layer) {}

// OnLayerCreate imp.
func (f *Feed) OnLayerCreate(_ *model.Map, layer *model.Layer) {
	f.watch(layer)
	f.record(EventLayerCreate, layer, nil)
}

// OnLayerDelete imp.
func (f *Feed) OnLayerDelete(_ *model.Map, layer *model.Layer) {
	delete(f.layers, layer)
	f.record(EventLayerDelete, layer, nil)
}

/****************** model.LayerListener *****************/

// OnLayerChanged imp.
func (f *Feed) OnLayerChanged(layer *model.Layer, changed []*model.Instance) {
	for _, inst := range changed {
		f.record(EventInstanceChange, layer, inst)
	}
}

// OnInstanceCreate imp.
func (f *Feed) OnInstanceCreate(layer *model.Layer, inst *model.Instance) {
	f.record(EventInstanceCreate, layer, inst)
}

// OnInstanceDelete imp.
func (f *Feed) OnInstanceDelete(layer *model.Layer, inst *model.Instance) {
	f.record(EventInstanceDelete, layer, inst)
}
