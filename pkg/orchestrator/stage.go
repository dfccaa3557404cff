// Copyright (c) 2026, Promstack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package orchestrator

// Stage identifies one step of the provisioning pipeline.
type Stage string

// Pipeline stages in execution order. A run moves strictly forward; the
// first stage error moves it to StageFailed and nothing later executes.
const (
	StagePending  Stage = "Pending"
	StageInstall  Stage = "InstallRunning"
	StageConfig   Stage = "ConfigRunning"
	StageService  Stage = "ServiceRunning"
	StageReload   Stage = "ReloadRunning"
	StageComplete Stage = "Complete"
	StageFailed   Stage = "Failed"
)
