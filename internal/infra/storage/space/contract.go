package space

import (
	"github.com/m04kA/SMC-StorageService/pkg/txmanager"
)

// DBExecutor интерфейс для работы с БД; активная транзакция
// извлекается из контекста через txmanager.GetExecutor.
type DBExecutor = txmanager.DBExecutor
