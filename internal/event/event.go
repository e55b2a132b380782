// internal/event/event.go
package event

// EventType — тип события
type EventType string

// События жизненного цикла анимаций.
const (
	Started          EventType = "started"
	Stopped          EventType = "stopped"
	Completed        EventType = "completed"
	Looped           EventType = "looped"
	ReactiveResolved EventType = "reactive-resolved"
	Destroyed        EventType = "destroyed"
)

// Event — структура события
type Event struct {
	Type   EventType
	Source string      // идентификатор анимации
	Data   interface{} // Данные события, если нужны
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc позволяет использовать обычную функцию как Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

type subscription struct {
	id       int
	listener Listener
}

// Dispatcher — диспетчер событий. Не потокобезопасен: живёт в той же
// горутине, что и цикл кадров.
type Dispatcher struct {
	listeners map[EventType][]subscription
	nextID    int
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscription),
	}
}

// Subscribe — подписка на событие. Возвращает функцию отписки.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) func() {
	d.nextID++
	id := d.nextID
	d.listeners[eventType] = append(d.listeners[eventType], subscription{id: id, listener: listener})
	return func() { d.unsubscribe(eventType, id) }
}

func (d *Dispatcher) unsubscribe(eventType EventType, id int) {
	if subs, exists := d.listeners[eventType]; exists {
		for i, s := range subs {
			if s.id == id {
				d.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Dispatch — отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	if subs, exists := d.listeners[event.Type]; exists {
		for _, s := range subs {
			s.listener.OnEvent(event)
		}
	}
}

// Clear — удаляет всех подписчиков
func (d *Dispatcher) Clear() {
	d.listeners = make(map[EventType][]subscription)
}
