package ports

// ConnectivityMonitor — источник сигнала online/offline.
// Никакой логики ретраев: только текущее значение и переходы.
type ConnectivityMonitor interface {
	Online() bool
	Transitions() <-chan bool
}
