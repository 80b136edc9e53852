package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Ledger --dir ../domain/scoring --output domain/scoring --outpkg scoringmock --filename ledger_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/user --output domain/user --outpkg usermock --filename repository_mock.go
