/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

// Brok is a single event record emitted by a scheduler/broker daemon.
// Depending on the emitting daemon generation it carries either an "id"
// or a "uuid" field; the dispatcher mirrors one into the other before any
// handler sees the record.
type Brok struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
	ID   string                 `json:"id,omitempty"`
	UUID string                 `json:"uuid,omitempty"`
}

// Brok types recognized by the dispatcher.
const (
	BrokProgramStatus    = "program_status"
	BrokInitialBroksDone = "initial_broks_done"

	BrokInitialHostStatus            = "initial_host_status"
	BrokInitialHostgroupStatus       = "initial_hostgroup_status"
	BrokInitialServiceStatus         = "initial_service_status"
	BrokInitialServicegroupStatus    = "initial_servicegroup_status"
	BrokInitialContactStatus         = "initial_contact_status"
	BrokInitialContactgroupStatus    = "initial_contactgroup_status"
	BrokInitialTimeperiodStatus      = "initial_timeperiod_status"
	BrokInitialCommandStatus         = "initial_command_status"
	BrokInitialNotificationwayStatus = "initial_notificationway_status"
	BrokInitialSchedulerStatus       = "initial_scheduler_status"
	BrokInitialPollerStatus          = "initial_poller_status"
	BrokInitialReactionnerStatus     = "initial_reactionner_status"
	BrokInitialBrokerStatus          = "initial_broker_status"
	BrokInitialReceiverStatus        = "initial_receiver_status"

	BrokUpdateProgramStatus     = "update_program_status"
	BrokUpdateHostStatus        = "update_host_status"
	BrokUpdateServiceStatus     = "update_service_status"
	BrokUpdateSchedulerStatus   = "update_scheduler_status"
	BrokUpdatePollerStatus      = "update_poller_status"
	BrokUpdateReactionnerStatus = "update_reactionner_status"
	BrokUpdateBrokerStatus      = "update_broker_status"
	BrokUpdateReceiverStatus    = "update_receiver_status"

	BrokHostCheckResult     = "host_check_result"
	BrokServiceCheckResult  = "service_check_result"
	BrokHostNextSchedule    = "host_next_schedule"
	BrokServiceNextSchedule = "service_next_schedule"

	// Log broks are plentiful and of no use for state regeneration.
	BrokLog = "log"
)

// InitialBrokTypes lists the bulk-dump brok types. In scheduler-embedded
// mode these are suppressed because the objects are adopted directly from
// the scheduler's live configuration.
var InitialBrokTypes = []string{
	BrokProgramStatus,
	BrokInitialHostStatus,
	BrokInitialHostgroupStatus,
	BrokInitialServiceStatus,
	BrokInitialServicegroupStatus,
	BrokInitialContactStatus,
	BrokInitialContactgroupStatus,
	BrokInitialTimeperiodStatus,
	BrokInitialCommandStatus,
}

// NeedDataMessage asks the broker tier to resend a full initial dump for
// one scheduler instance.
type NeedDataMessage struct {
	Type   string       `json:"type"`
	Data   NeedDataBody `json:"data"`
	Source string       `json:"source"`
}

type NeedDataBody struct {
	FullInstanceID string `json:"full_instance_id"`
}

// NewNeedDataMessage builds the resync request for an unknown instance.
func NewNeedDataMessage(instanceID string) NeedDataMessage {
	return NeedDataMessage{
		Type:   "NeedData",
		Data:   NeedDataBody{FullInstanceID: instanceID},
		Source: "WebUI",
	}
}
