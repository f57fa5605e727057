// Package mocks holds gomock doubles for the port interfaces.
package mocks

//go:generate mockgen -destination=mock_technician_repository.go -package=mocks -mock_names=Repository=MockTechnicianRepository github.com/alanyang/hemotask/internal/port/technician Repository
//go:generate mockgen -destination=mock_task_repository.go -package=mocks -mock_names=Repository=MockTaskRepository github.com/alanyang/hemotask/internal/port/task Repository
//go:generate mockgen -destination=mock_audit_repository.go -package=mocks -mock_names=Repository=MockAuditRepository github.com/alanyang/hemotask/internal/port/audit Repository
//go:generate mockgen -destination=mock_eventbus.go -package=mocks -mock_names=EventBus=MockEventBus github.com/alanyang/hemotask/internal/port/eventbus EventBus
//go:generate mockgen -destination=mock_locker.go -package=mocks -mock_names=AdvisoryLocker=MockAdvisoryLocker github.com/alanyang/hemotask/internal/port/locker AdvisoryLocker
//go:generate mockgen -destination=mock_notifier.go -package=mocks -mock_names=TechnicianNotifier=MockTechnicianNotifier github.com/alanyang/hemotask/internal/port/notifier TechnicianNotifier
//go:generate mockgen -destination=mock_selector.go -package=mocks -mock_names=Selector=MockSelector github.com/alanyang/hemotask/internal/port/selector Selector
